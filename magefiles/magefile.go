//go:build mage

// Package main contains Mage build targets for juridico-rag developer tooling.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the CLI expects.
var projectDirs = []string{
	"audit",
	"review",
}

// Init creates the working directories and a starter sources catalogue.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	catalogue := filepath.Join("review", "sources.yaml")
	if _, err := os.Stat(catalogue); os.IsNotExist(err) {
		if err := os.WriteFile(catalogue, []byte("sources: []\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", catalogue, err)
		}
		fmt.Println("  ", catalogue)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "juridico-rag"
	cmdPkg  = "./cmd/juridico-rag"

	// buildTags enables FTS5 in go-sqlite3 for the audit log.
	buildTags = "sqlite_fts5"
)

// Build compiles the CLI binary into bin/ with -tags sqlite_fts5. A plain
// go build or go install links go-sqlite3 without FTS5, and the audit
// commands then fail with "no such module: fts5".
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-tags", buildTags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "-tags", buildTags, "./...")
}

// Serve builds the CLI and starts the HTTP service on :8080.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "serve")
}

// Stats prints project metrics: Go production/test LOC and Markdown/YAML word count.
func Stats() error {
	var prodLines, testLines, docWords int
	err := walkSources(".", func(path string, data []byte) {
		switch {
		case strings.HasSuffix(path, "_test.go"):
			testLines += countLines(data)
		case strings.HasSuffix(path, ".go"):
			prodLines += countLines(data)
		default:
			docWords += len(bytes.Fields(data))
		}
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (Markdown/YAML):          %d\n", docWords)
	return nil
}

// statsExts lists the file extensions Stats reads.
var statsExts = map[string]bool{".go": true, ".md": true, ".yaml": true, ".yml": true}

// walkSources calls fn with the contents of every counted file under root,
// skipping directories the go tool ignores (names starting with "_" or ".").
func walkSources(root string, fn func(path string, data []byte)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !statsExts[filepath.Ext(path)] {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		fn(path, data)
		return nil
	})
}

// countLines counts non-blank lines.
func countLines(data []byte) int {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}
