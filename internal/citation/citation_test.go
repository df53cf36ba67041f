// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"no brackets", "Plain answer without citations.", nil},
		{"empty text", "", nil},
		{"single", "See [Lei 8.078/1990].", []string{"Lei 8.078/1990"}},
		{"comma joined", "[Art. 5, CF/88]", []string{"Art. 5", "CF/88"}},
		{"empty bracket", "[]", nil},
		{"empty parts dropped", "[a,, b]", []string{"a", "b"}},
		{"only commas and spaces", "[ , ,  ]", nil},
		{"unterminated", "see [Doc A and more", nil},
		{"nested opening bracket", "[a[b]c]", []string{"a[b"}},
		{
			name: "order across groups",
			text: "First [B, A] then [C] and [A].",
			want: []string{"B", "A", "C", "A"},
		},
		{
			name: "spans newlines",
			text: "[Doc\nA]",
			want: []string{"Doc\nA"},
		},
		{"trims whitespace", "[  Súmula 7  ]", []string{"Súmula 7"}},
	}

	ex := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ex.Extract(tt.text))
		})
	}
}

func TestExtractConcatenatesGroups(t *testing.T) {
	groups := [][]string{{"STF RE 123"}, {"Lei 9.099", "CPC art. 3"}, {"Doc Z"}}

	var b strings.Builder
	var want []string
	for _, g := range groups {
		b.WriteString("texto [")
		b.WriteString(strings.Join(g, " , "))
		b.WriteString("] ")
		want = append(want, g...)
	}

	assert.Equal(t, want, NewExtractor().Extract(b.String()))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Law 123 ", "law 123"},
		{"LAW 123", "law 123"},
		{"Straße", "strasse"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		sources []string
		want    []string
	}{
		{
			name:   "no sources reports every citation",
			answer: "[Law 123]",
			want:   []string{"Law 123"},
		},
		{
			name:    "case-insensitive duplicates verified",
			answer:  "[law 123, LAW 123]",
			sources: []string{"Law 123"},
			want:    nil,
		},
		{
			name:    "case-insensitive match",
			answer:  "[Doc A]",
			sources: []string{"doc a"},
			want:    nil,
		},
		{
			name:    "source whitespace trimmed",
			answer:  "[Doc A]",
			sources: []string{"  DOC A\t"},
			want:    nil,
		},
		{
			name:    "unverified reported once in first-occurrence form",
			answer:  "[Doc X] text [doc x, Doc A] and [DOC X]",
			sources: []string{"Doc A"},
			want:    []string{"Doc X"},
		},
		{
			name:    "order of first occurrence",
			answer:  "[C] [A, B] [C]",
			sources: []string{"B"},
			want:    []string{"C", "A"},
		},
		{
			name:    "no citations",
			answer:  "Resumo jurídico para: algo",
			sources: []string{"Doc A"},
			want:    nil,
		},
		{
			name:    "malformed brackets ignored",
			answer:  "[Doc A] and [unterminated",
			sources: []string{"Doc A"},
			want:    nil,
		},
		{
			name:    "case folding beyond ASCII",
			answer:  "[STRASSE 1]",
			sources: []string{"Straße 1"},
			want:    nil,
		},
	}

	v := NewVerifier(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Validate(tt.answer, tt.sources))
		})
	}
}

func TestValidateIdempotent(t *testing.T) {
	v := NewVerifier(NewExtractor())
	answer := "[A, b] [B] [c] [a]"
	sources := []string{"c"}

	first := v.Validate(answer, sources)
	second := v.Validate(answer, sources)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"A", "b"}, first)
}

func TestValidateAllCitedSourcesVerified(t *testing.T) {
	v := NewVerifier(nil)
	sources := []string{"Lei 8.078/1990", "CF/88 art. 5", "Súmula 7 STJ"}

	var b strings.Builder
	for _, s := range sources {
		b.WriteString("[" + strings.ToUpper(s) + "] ")
		b.WriteString("[ " + strings.ToLower(s) + " ] ")
	}

	assert.Empty(t, v.Validate(b.String(), sources))
}

func TestCheck(t *testing.T) {
	v := NewVerifier(nil)
	res := v.Check("[Doc A, Doc B] [doc a] [Doc C]", []string{"doc a", "DOC C"})

	assert.Equal(t, []string{"Doc A", "Doc C"}, res.Verified)
	assert.Equal(t, []string{"Doc B"}, res.Unverified)
}

func TestVerifierConcurrentUse(t *testing.T) {
	v := NewVerifier(nil)
	sources := []string{"Doc A"}

	var wg sync.WaitGroup
	results := make([][]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = v.Validate("[Doc A] [Doc B] [doc b]", sources)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		require.Equal(t, []string{"Doc B"}, got, "goroutine %d", i)
	}
}
