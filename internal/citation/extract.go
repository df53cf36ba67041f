// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation extracts bracketed citation markers from answer text and
// checks them against the sources that ground the answer.
package citation

import (
	"regexp"
	"strings"
)

// bracketPattern matches inline citation groups: [Key] or [Key1, Key2].
// Content runs up to the first closing bracket, so "[a[b]c]" yields "a[b".
var bracketPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// Extractor pulls citations out of free text. The zero value is not usable;
// construct one with NewExtractor. An Extractor is immutable and safe for
// concurrent use.
type Extractor struct {
	pattern *regexp.Regexp
}

// NewExtractor returns an Extractor sharing the package's compiled pattern.
func NewExtractor() *Extractor {
	return &Extractor{pattern: bracketPattern}
}

// Extract returns the citations in text in the order they appear: bracket
// groups left to right, then comma-separated entries within each group.
// Entries are trimmed and empty entries are dropped. Unterminated brackets
// are ignored.
func (e *Extractor) Extract(text string) []string {
	var citations []string
	for _, m := range e.pattern.FindAllStringSubmatch(text, -1) {
		for _, part := range strings.Split(m[1], ",") {
			c := strings.TrimSpace(part)
			if c != "" {
				citations = append(citations, c)
			}
		}
	}
	return citations
}
