// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    []string
		wantErr bool
	}{
		{
			name: "valid catalogue",
			yaml: `sources:
  - id: Lei 8.078/1990
    title: Código de Defesa do Consumidor
    url: https://www.planalto.gov.br/ccivil_03/leis/l8078compilado.htm
  - id: Súmula 7 STJ
`,
			want: []string{"Lei 8.078/1990", "Súmula 7 STJ"},
		},
		{
			name: "empty sources",
			yaml: "sources: []\n",
			want: []string{},
		},
		{
			name:    "invalid yaml",
			yaml:    "{{{bad",
			wantErr: true,
		},
		{
			name:    "missing id",
			yaml:    "sources:\n  - title: Sem identificador\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "sources.yaml", tt.yaml)
			f, err := LoadFile(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.IDs())
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "sources.yaml"))
	assert.Error(t, err)
}

func TestReadLines(t *testing.T) {
	in := "# catálogo\nDoc A\n\n  Doc B  \n#Doc C\n"
	got, err := ReadLines(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"Doc A", "Doc B"}, got)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "fontes.yml", "sources:\n  - id: Doc A\n")
	txtPath := writeFile(t, dir, "fontes.txt", "Doc B\nDoc C\n")

	got, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Doc A"}, got)

	got, err = Load(txtPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Doc B", "Doc C"}, got)

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
