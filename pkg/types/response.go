// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Response is the record assembled for a legal query. Field names follow the
// wire format consumed by the orchestration layer.
type Response struct {
	// Query is the user's question as received.
	Query string `json:"consulta" yaml:"consulta"`

	// Answer is the generated answer text.
	Answer string `json:"resposta" yaml:"resposta"`

	// Sources lists the source identifiers that ground the answer, in the
	// order supplied by the caller.
	Sources []string `json:"fontes" yaml:"fontes"`

	// Alerts lists the citations in Answer that match no source. It is nil
	// when every citation is verified; an assembled Response never carries a
	// non-nil empty slice, so the field is either absent or populated.
	Alerts []string `json:"alertas,omitempty" yaml:"alertas,omitempty"`
}

// HasAlerts reports whether the response carries unverifiable citations.
func (r Response) HasAlerts() bool {
	return r.Alerts != nil
}

// SourceEntry describes one document in a sources catalogue.
type SourceEntry struct {
	// ID is the identifier cited inline (e.g. "Lei 8.078/1990").
	ID string `json:"id" yaml:"id"`

	// Title is a human-readable title for the document.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// URL points at the published document, when known.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// SourcesFile holds the documents listed in a sources.yaml catalogue.
type SourcesFile struct {
	Sources []SourceEntry `json:"sources" yaml:"sources"`
}

// IDs returns the catalogue identifiers in file order.
func (f *SourcesFile) IDs() []string {
	ids := make([]string, 0, len(f.Sources))
	for _, s := range f.Sources {
		ids = append(ids, s.ID)
	}
	return ids
}

// FileReport records the unverifiable citations found in one answer file.
type FileReport struct {
	// File is the answer file's base name (e.g. "01-consumidor.md").
	File string `json:"file" yaml:"file"`

	// Alerts lists the file's unverifiable citations. Nil when clean.
	Alerts []string `json:"alertas,omitempty" yaml:"alertas,omitempty"`
}

// ReviewReport aggregates the validation of a review directory.
type ReviewReport struct {
	// Files holds one report per answer file, in file order.
	Files []FileReport `json:"files" yaml:"files"`

	// Alerts is the deduplicated union of all file alerts, in first-occurrence
	// order. Nil when every file is clean.
	Alerts []string `json:"alertas,omitempty" yaml:"alertas,omitempty"`
}
