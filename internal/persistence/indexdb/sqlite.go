// Package indexdb keeps a small SQLite catalog of generated snapshots so
// tooling can find a world by seed or digest without opening every file.
package indexdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteIndex struct {
	db *sql.DB
}

type SnapshotRow struct {
	Path      string
	Seed      int64
	Width     int
	Height    int
	Digest    string
	GenMillis int64
	CreatedAt string
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteIndex{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		path TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		digest TEXT NOT NULL,
		gen_ms INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);`)
	return err
}

// RecordSnapshot upserts one snapshot row keyed on path.
func (s *SQLiteIndex) RecordSnapshot(row SnapshotRow) error {
	if row.CreatedAt == "" {
		row.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(`INSERT INTO snapshots (path, seed, width, height, digest, gen_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			seed=excluded.seed, width=excluded.width, height=excluded.height,
			digest=excluded.digest, gen_ms=excluded.gen_ms, created_at=excluded.created_at`,
		row.Path, row.Seed, row.Width, row.Height, row.Digest, row.GenMillis, row.CreatedAt)
	return err
}

// Snapshots returns all recorded rows, newest first.
func (s *SQLiteIndex) Snapshots() ([]SnapshotRow, error) {
	rows, err := s.db.Query(`SELECT path, seed, width, height, digest, gen_ms, created_at
		FROM snapshots ORDER BY created_at DESC, path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SnapshotRow
	for rows.Next() {
		var r SnapshotRow
		if err := rows.Scan(&r.Path, &r.Seed, &r.Width, &r.Height, &r.Digest, &r.GenMillis, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}
