// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package review checks a directory of drafted answers against the sources
// catalogue stored alongside them. A review directory holds sources.yaml and
// numbered answer files named NN-slug.md.
package review

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/pdiddy/juridico-rag/internal/citation"
	"github.com/pdiddy/juridico-rag/internal/sources"
	"github.com/pdiddy/juridico-rag/pkg/types"
)

// SourcesFile is the catalogue name expected in a review directory.
const SourcesFile = "sources.yaml"

// answerFilePattern matches numbered answer files: NN-slug.md.
var answerFilePattern = regexp.MustCompile(`^\d{2}-.+\.md$`)

// AnswerFiles returns the ordered list of numbered answer file paths in dir.
func AnswerFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading review directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if answerFilePattern.MatchString(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run validates every answer file in dir against dir/sources.yaml. The
// report's aggregate alerts are deduplicated by normalized form across files
// and keep first-occurrence order.
func Run(dir string, v *citation.Verifier) (*types.ReviewReport, error) {
	catalogue, err := sources.LoadFile(filepath.Join(dir, SourcesFile))
	if err != nil {
		return nil, err
	}
	ids := catalogue.IDs()

	files, err := AnswerFiles(dir)
	if err != nil {
		return nil, err
	}

	report := &types.ReviewReport{Files: make([]types.FileReport, 0, len(files))}
	seen := make(map[string]bool)
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filepath.Base(f), err)
		}
		alerts := v.Validate(string(data), ids)
		report.Files = append(report.Files, types.FileReport{
			File:   filepath.Base(f),
			Alerts: alerts,
		})
		for _, a := range alerts {
			n := citation.Normalize(a)
			if !seen[n] {
				seen[n] = true
				report.Alerts = append(report.Alerts, a)
			}
		}
	}
	return report, nil
}
