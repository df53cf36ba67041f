// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audit

import (
	"context"
	"fmt"
	"strings"
)

// ListOptions holds parameters for audit queries.
type ListOptions struct {
	// Query is free text searched over the query and answer text. Every
	// term must appear; FTS5 operators are not interpreted.
	Query string

	// OnlyAlerts restricts results to responses with unverifiable citations.
	OnlyAlerts bool

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// List returns stored records. Full-text queries are ranked by relevance;
// otherwise the newest records come first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		match  = matchExpr(opts.Query)
		useFTS = match != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.id, r.created_at, r.consulta, r.resposta, r.fontes, r.alertas
			FROM responses_fts
			JOIN responses r ON r.rowid = responses_fts.rowid
			WHERE responses_fts MATCH ?`)
		args = append(args, match)
	} else {
		qb.WriteString(
			`SELECT r.id, r.created_at, r.consulta, r.resposta, r.fontes, r.alertas
			FROM responses r
			WHERE 1=1`)
	}

	if opts.OnlyAlerts {
		qb.WriteString(` AND r.alert_count > 0`)
	}

	if useFTS {
		qb.WriteString(` ORDER BY responses_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.rowid DESC`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// matchExpr turns free text into an FTS5 query: each whitespace-separated
// term becomes a quoted phrase, so identifiers like "Lei 8.078/1990" or
// "CF/88" are matched literally instead of parsed as FTS5 syntax. Terms are
// ANDed. Returns "" when text has no terms.
func matchExpr(text string) string {
	terms := strings.Fields(text)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}
