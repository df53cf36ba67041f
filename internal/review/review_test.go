// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/juridico-rag/internal/citation"
)

// writeFile is a test helper that creates a file with the given content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const catalogue = `sources:
  - id: Lei 8.078/1990
  - id: Súmula 7 STJ
`

func TestAnswerFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "02-prazo.md", "")
	writeFile(t, dir, "01-consumidor.md", "")
	writeFile(t, dir, "notes.md", "")
	writeFile(t, dir, "1-short.md", "")
	writeFile(t, dir, "03-draft.txt", "")
	if err := os.Mkdir(filepath.Join(dir, "04-dir.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := AnswerFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "01-consumidor.md" || filepath.Base(files[1]) != "02-prazo.md" {
		t.Errorf("files = %v, want sorted numbered answers", files)
	}
}

func TestAnswerFilesMissingDir(t *testing.T) {
	if _, err := AnswerFiles(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SourcesFile, catalogue)
	writeFile(t, dir, "01-consumidor.md", "O fornecedor responde [lei 8.078/1990] [CC art. 927].\n")
	writeFile(t, dir, "02-recurso.md", "Reexame vedado [SÚMULA 7 STJ].\n")
	writeFile(t, dir, "03-outro.md", "Ver [cc art. 927, Tema 1234].\n")

	report, err := Run(dir, citation.NewVerifier(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Files) != 3 {
		t.Fatalf("len(Files) = %d, want 3", len(report.Files))
	}
	if got := report.Files[0].Alerts; len(got) != 1 || got[0] != "CC art. 927" {
		t.Errorf("Files[0].Alerts = %v, want [CC art. 927]", got)
	}
	if report.Files[1].Alerts != nil {
		t.Errorf("Files[1].Alerts = %v, want nil", report.Files[1].Alerts)
	}
	want := []string{"CC art. 927", "Tema 1234"}
	if len(report.Alerts) != len(want) {
		t.Fatalf("Alerts = %v, want %v", report.Alerts, want)
	}
	for i := range want {
		if report.Alerts[i] != want[i] {
			t.Errorf("Alerts[%d] = %q, want %q", i, report.Alerts[i], want[i])
		}
	}
}

func TestRunClean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SourcesFile, catalogue)
	writeFile(t, dir, "01-consumidor.md", "Texto [Lei 8.078/1990].\n")

	report, err := Run(dir, citation.NewVerifier(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Alerts != nil {
		t.Errorf("Alerts = %v, want nil", report.Alerts)
	}
}

func TestRunMissingSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01-consumidor.md", "[Doc A]")
	if _, err := Run(dir, citation.NewVerifier(nil)); err == nil {
		t.Error("expected error for missing sources.yaml")
	}
}
