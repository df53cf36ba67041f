// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audit keeps a SQLite log of assembled responses so reviewers can
// search past answers and the citations that were flagged.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/juridico-rag/pkg/types"
)

const (
	dbFile            = "audit.db"
	defaultDir        = "audit"
	defaultMaxResults = 20
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("audit record not found")

// Record is a stored response with its audit metadata.
type Record struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	types.Response `yaml:",inline"`
}

// Store manages the audit SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	logger     *zap.Logger
	now        func() time.Time
}

// NewStore opens or creates the audit database at cfg.Dir/audit.db and
// creates the schema if it does not exist. A nil logger disables logging.
func NewStore(cfg types.AuditConfig, logger *zap.Logger) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		db:         db,
		dir:        dir,
		maxResults: maxResults,
		logger:     logger,
		now:        time.Now,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS responses (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL,
			consulta TEXT NOT NULL,
			resposta TEXT NOT NULL,
			fontes TEXT NOT NULL,
			alertas TEXT,
			alert_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_responses_created_at ON responses(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_responses_alert_count ON responses(alert_count)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='responses_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE responses_fts USING fts5(consulta, resposta, content=responses, content_rowid=rowid)`,
			`CREATE TRIGGER responses_ai AFTER INSERT ON responses BEGIN
				INSERT INTO responses_fts(rowid, consulta, resposta) VALUES (new.rowid, new.consulta, new.resposta);
			END`,
			`CREATE TRIGGER responses_ad AFTER DELETE ON responses BEGIN
				INSERT INTO responses_fts(responses_fts, rowid, consulta, resposta) VALUES('delete', old.rowid, old.consulta, old.resposta);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return ftsError(err)
			}
		}
	}

	return nil
}

// ftsError wraps a failure to create the FTS5 table. go-sqlite3 only ships
// FTS5 when built with the sqlite_fts5 tag, so that case names the tag.
func ftsError(err error) error {
	if strings.Contains(err.Error(), "no such module: fts5") {
		return fmt.Errorf("creating FTS infrastructure (rebuild with -tags sqlite_fts5): %w", err)
	}
	return fmt.Errorf("creating FTS infrastructure: %w", err)
}

// Record stores resp and returns the new record id.
func (s *Store) Record(ctx context.Context, resp types.Response) (string, error) {
	id := uuid.NewString()
	createdAt := s.now().UTC().Format(time.RFC3339Nano)

	sourcesJSON, err := json.Marshal(nonNil(resp.Sources))
	if err != nil {
		return "", fmt.Errorf("marshaling sources: %w", err)
	}

	// alertas stays NULL for clean responses so absence survives a round trip.
	var alertsJSON sql.NullString
	if resp.Alerts != nil {
		data, err := json.Marshal(resp.Alerts)
		if err != nil {
			return "", fmt.Errorf("marshaling alerts: %w", err)
		}
		alertsJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO responses (id, created_at, consulta, resposta, fontes, alertas, alert_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, createdAt, resp.Query, resp.Answer, string(sourcesJSON), alertsJSON, len(resp.Alerts),
	)
	if err != nil {
		return "", fmt.Errorf("inserting response: %w", err)
	}

	s.logger.Debug("recorded response",
		zap.String("id", id),
		zap.Int("alerts", len(resp.Alerts)),
	)
	return id, nil
}

// RecordResponse stores resp, discarding the id. It lets a Store serve as
// the assembler's recorder.
func (s *Store) RecordResponse(ctx context.Context, resp types.Response) error {
	_, err := s.Record(ctx, resp)
	return err
}

// Get returns the record with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, consulta, resposta, fontes, alertas
		 FROM responses WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("looking up record: %w", err)
	}
	return rec, nil
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		rec         Record
		createdAt   string
		sourcesJSON string
		alertsJSON  sql.NullString
	)
	if err := sc.Scan(&rec.ID, &createdAt, &rec.Query, &rec.Answer, &sourcesJSON, &alertsJSON); err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at for %s: %w", rec.ID, err)
	}
	rec.CreatedAt = t

	if err := json.Unmarshal([]byte(sourcesJSON), &rec.Sources); err != nil {
		return nil, fmt.Errorf("decoding sources for %s: %w", rec.ID, err)
	}
	if alertsJSON.Valid {
		if err := json.Unmarshal([]byte(alertsJSON.String), &rec.Alerts); err != nil {
			return nil, fmt.Errorf("decoding alerts for %s: %w", rec.ID, err)
		}
	}
	return &rec, nil
}
