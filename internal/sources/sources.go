// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources loads the identifiers of documents available to ground an
// answer, either from a YAML catalogue or from a plain list.
package sources

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/juridico-rag/pkg/types"
)

// LoadFile reads a sources catalogue:
//
//	sources:
//	  - id: Lei 8.078/1990
//	    title: Código de Defesa do Consumidor
func LoadFile(path string) (*types.SourcesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources: %w", err)
	}
	var f types.SourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing sources: %w", err)
	}
	for i, s := range f.Sources {
		if strings.TrimSpace(s.ID) == "" {
			return nil, fmt.Errorf("parsing sources: entry %d has no id", i+1)
		}
	}
	return &f, nil
}

// ReadLines reads one identifier per line. Blank lines and lines starting
// with '#' are skipped; identifiers are trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading sources: %w", err)
	}
	return ids, nil
}

// Load returns identifiers from path. Files ending in .yaml or .yml are
// parsed as catalogues; anything else is read line by line.
func Load(path string) ([]string, error) {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		f, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		return f.IDs(), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources: %w", err)
	}
	defer fh.Close()
	return ReadLines(fh)
}
