// Package archive persists successful transcription results across runs.
// While progress checkpoints are batch-scoped and removed on completion,
// the archive accumulates transcripts so past batches stay searchable.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"clipscribe/internal/checkpoint"
	"clipscribe/internal/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
    url TEXT PRIMARY KEY,
    title TEXT,
    author TEXT,
    language TEXT,
    transcript TEXT,
    metadata_json TEXT,
    archived_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcripts_language ON transcripts(language);
`

// Entry is a single archived transcription.
type Entry struct {
	URL        string
	Title      string
	Author     string
	Language   string
	Transcript string
	ArchivedAt time.Time
}

// Store manages transcript persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the archive database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, path: filepath.Clean(path)}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save upserts a successful outcome. Failed outcomes are ignored; their
// reasons live in the batch report, not the archive.
func (s *Store) Save(ctx context.Context, outcome checkpoint.Outcome) error {
	if outcome.Status != checkpoint.StatusSuccess {
		return nil
	}

	var (
		title, author, lang, text string
		metadataJSON              any
	)
	if outcome.Metadata != nil {
		title = outcome.Metadata.Title
		author = outcome.Metadata.Author
		raw, err := json.Marshal(outcome.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
		metadataJSON = string(raw)
	}
	if outcome.Transcript != nil {
		lang = outcome.Transcript.Language
		text = outcome.Transcript.Text
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO transcripts (url, title, author, language, transcript, metadata_json, archived_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(url) DO UPDATE SET
             title = excluded.title,
             author = excluded.author,
             language = excluded.language,
             transcript = excluded.transcript,
             metadata_json = excluded.metadata_json,
             archived_at = excluded.archived_at`,
		outcome.URL,
		title,
		author,
		lang,
		text,
		metadataJSON,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	return nil
}

// List returns archived entries ordered by archive time, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT url, title, author, language, transcript, archived_at
         FROM transcripts ORDER BY archived_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry Entry
			raw   string
		)
		if err := rows.Scan(&entry.URL, &entry.Title, &entry.Author, &entry.Language, &entry.Transcript, &raw); err != nil {
			return nil, fmt.Errorf("scan transcript: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			entry.ArchivedAt = ts
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Get returns the archived entry for a URL along with its stored metadata,
// or nil when the URL was never archived.
func (s *Store) Get(ctx context.Context, url string) (*Entry, *media.Metadata, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT url, title, author, language, transcript, metadata_json, archived_at
         FROM transcripts WHERE url = ?`,
		url,
	)
	var (
		entry Entry
		meta  sql.NullString
		raw   string
	)
	err := row.Scan(&entry.URL, &entry.Title, &entry.Author, &entry.Language, &entry.Transcript, &meta, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get transcript: %w", err)
	}
	if ts, parseErr := time.Parse(time.RFC3339Nano, raw); parseErr == nil {
		entry.ArchivedAt = ts
	}

	var metadata *media.Metadata
	if meta.Valid && meta.String != "" {
		metadata = &media.Metadata{}
		if unmarshalErr := json.Unmarshal([]byte(meta.String), metadata); unmarshalErr != nil {
			metadata = nil
		}
	}
	return &entry, metadata, nil
}
