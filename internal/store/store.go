// Package store keeps uploaded about-me revisions and privacy-conscious
// visitor metrics in SQLite.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup has no rows.
var ErrNotFound = errors.New("not found")

// ErrEmptyDocument is returned when an upload has no content.
var ErrEmptyDocument = errors.New("document is empty")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	body TEXT NOT NULL,
	checksum TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_created ON documents(created_at);

CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,  -- salted hash, never the raw address
	user_agent TEXT,
	path TEXT,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);
`

// Store wraps the SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) portfolio.db in dataDir and ensures the schema.
// Pass ":memory:" for an in-memory database.
func Open(dataDir string) (*Store, error) {
	dsn := ":memory:"
	if dataDir != ":memory:" {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "portfolio.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection: an in-memory database lives and dies with it, and it
	// avoids "database is locked" on file databases.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Document is one revision of the about-me text.
type Document struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentInfo describes a revision without its body.
type DocumentInfo struct {
	ID        string    `json:"id"`
	Checksum  string    `json:"checksum"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

func checksum(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

// SaveDocument stores body as the newest revision.
func (s *Store) SaveDocument(ctx context.Context, body string) (Document, error) {
	if strings.TrimSpace(body) == "" {
		return Document{}, ErrEmptyDocument
	}

	doc := Document{
		ID:        uuid.NewString(),
		Body:      body,
		Checksum:  checksum(body),
		CreatedAt: s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, body, checksum, created_at) VALUES (?, ?, ?, ?)`,
		doc.ID, doc.Body, doc.Checksum, doc.CreatedAt.UnixNano())
	if err != nil {
		return Document{}, fmt.Errorf("inserting document: %w", err)
	}
	return doc, nil
}

// LatestDocument returns the newest revision, or ErrNotFound.
func (s *Store) LatestDocument(ctx context.Context) (Document, error) {
	var (
		doc     Document
		created int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, body, checksum, created_at
		FROM documents
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`).Scan(&doc.ID, &doc.Body, &doc.Checksum, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("querying latest document: %w", err)
	}
	doc.CreatedAt = time.Unix(0, created).UTC()
	return doc, nil
}

// ListDocuments returns up to limit revisions, newest first.
func (s *Store) ListDocuments(ctx context.Context, limit int) ([]DocumentInfo, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, checksum, length(CAST(body AS BLOB)), created_at
		FROM documents
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	docs := []DocumentInfo{}
	for rows.Next() {
		var (
			info    DocumentInfo
			created int64
		)
		if err := rows.Scan(&info.ID, &info.Checksum, &info.Size, &created); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		info.CreatedAt = time.Unix(0, created).UTC()
		docs = append(docs, info)
	}
	return docs, rows.Err()
}
