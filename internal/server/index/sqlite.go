// Package index persists scan results: which PNGs the daemon inspected
// and what chunks they carried.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/systemshift/pngmark/pkg/pngmark"
)

// Scan is one inspected PNG
type Scan struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	SHA256     string              `json:"sha256"`
	SizeBytes  int64               `json:"sizeBytes"`
	ChunkCount int                 `json:"chunkCount"`
	Created    time.Time           `json:"created"`
	Chunks     []pngmark.ChunkInfo `json:"chunks,omitempty"`
}

// Store implements the scan index using SQLite
type Store struct {
	db *sql.DB
}

// Open creates a new SQLite scan index
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Verify connectivity
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("connecting to sqlite: %w", err)
	}

	for _, pragma := range allPragmas() {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	for _, stmt := range allSchemaStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the SQLite connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveScan records an inspected PNG and its chunks, returning the scan ID
func (s *Store) SaveScan(ctx context.Context, name, sha256 string, sizeBytes int64, chunks []pngmark.ChunkInfo) (*Scan, error) {
	scan := &Scan{
		ID:         uuid.New().String(),
		Name:       name,
		SHA256:     sha256,
		SizeBytes:  sizeBytes,
		ChunkCount: len(chunks),
		Created:    time.Now().UTC(),
		Chunks:     chunks,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO scans (id, name, sha256, size_bytes, chunk_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		scan.ID, scan.Name, scan.SHA256, scan.SizeBytes, scan.ChunkCount, scan.Created)
	if err != nil {
		return nil, fmt.Errorf("inserting scan: %w", err)
	}

	for i, c := range chunks {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO chunks (scan_id, position, type, length, crc, critical, public, safe_to_copy, valid)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			scan.ID, i, c.Type, c.Length, c.CRC, c.Critical, c.Public, c.SafeToCopy, c.Valid)
		if err != nil {
			return nil, fmt.Errorf("inserting chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing scan: %w", err)
	}
	return scan, nil
}

// GetScan returns one scan with its chunk rows
func (s *Store) GetScan(ctx context.Context, id string) (*Scan, error) {
	scan := &Scan{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT name, sha256, size_bytes, chunk_count, created_at FROM scans WHERE id = ?`, id).
		Scan(&scan.Name, &scan.SHA256, &scan.SizeBytes, &scan.ChunkCount, &scan.Created)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scan %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying scan: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT type, length, crc, critical, public, safe_to_copy, valid
		 FROM chunks WHERE scan_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c pngmark.ChunkInfo
		if err := rows.Scan(&c.Type, &c.Length, &c.CRC, &c.Critical, &c.Public, &c.SafeToCopy, &c.Valid); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		scan.Chunks = append(scan.Chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return scan, nil
}

// ListScans returns scan summaries newest first, without chunk rows
func (s *Store) ListScans(ctx context.Context, limit int) ([]*Scan, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, sha256, size_bytes, chunk_count, created_at
		 FROM scans ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying scans: %w", err)
	}
	defer rows.Close()

	var scans []*Scan
	for rows.Next() {
		scan := &Scan{}
		if err := rows.Scan(&scan.ID, &scan.Name, &scan.SHA256, &scan.SizeBytes, &scan.ChunkCount, &scan.Created); err != nil {
			return nil, fmt.Errorf("scanning scan row: %w", err)
		}
		scans = append(scans, scan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scans: %w", err)
	}
	return scans, nil
}
