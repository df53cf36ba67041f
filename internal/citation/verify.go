// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize returns the comparison form of a citation or source identifier:
// surrounding whitespace removed and Unicode case folded.
func Normalize(s string) string {
	// A Caser carries state; build one per call instead of sharing.
	return cases.Fold().String(strings.TrimSpace(s))
}

// Result splits the distinct citations of an answer by whether a source
// backs them. Both lists keep first-occurrence order and hold the citation
// as written in the answer.
type Result struct {
	Verified   []string `json:"verified"`
	Unverified []string `json:"unverified"`
}

// Verifier flags citations that match none of the supplied sources.
// A Verifier holds no per-call state and is safe for concurrent use.
type Verifier struct {
	extractor *Extractor
}

// NewVerifier returns a Verifier using ex to find citations. A nil ex
// selects NewExtractor().
func NewVerifier(ex *Extractor) *Verifier {
	if ex == nil {
		ex = NewExtractor()
	}
	return &Verifier{extractor: ex}
}

// Extract returns the citations in answer, in order of appearance.
func (v *Verifier) Extract(answer string) []string {
	return v.extractor.Extract(answer)
}

// Validate returns the citations in answer that match no source, compared
// after normalization. Each distinct citation is reported once, as first
// written, in first-occurrence order. With no sources every citation is
// reported. The result is nil when all citations are verified.
func (v *Verifier) Validate(answer string, sources []string) []string {
	return v.Check(answer, sources).Unverified
}

// Check is Validate that also reports the verified citations.
func (v *Verifier) Check(answer string, sources []string) Result {
	known := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		known[Normalize(s)] = struct{}{}
	}

	var res Result
	seen := make(map[string]bool)
	for _, c := range v.extractor.Extract(answer) {
		n := Normalize(c)
		if seen[n] {
			continue
		}
		seen[n] = true
		if _, ok := known[n]; ok {
			res.Verified = append(res.Verified, c)
		} else {
			res.Unverified = append(res.Unverified, c)
		}
	}
	return res
}
