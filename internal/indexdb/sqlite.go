// Package indexdb mirrors extracted identifier lists into a SQLite catalog so
// lists from many versions can be queried side by side. The generated files
// stay the source of truth; the catalog is rewritten per (version, category).
package indexdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteIndex is a handle on the catalog database.
type SQLiteIndex struct {
	db *sql.DB
}

// Run describes one category extraction to record.
type Run struct {
	Version    string // as typed, e.g. "1.21"
	Normalized string // e.g. "1.21.0"
	Category   string
	JarSHA256  string
	IDs        []string
	RecordedAt time.Time
}

// OpenSQLite opens (creating if needed) the catalog at path.
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
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			version TEXT NOT NULL,
			category TEXT NOT NULL,
			normalized TEXT NOT NULL,
			jar_sha256 TEXT NOT NULL,
			count INTEGER NOT NULL,
			recorded_at TEXT NOT NULL,
			PRIMARY KEY (version, category)
		);`,
		`CREATE TABLE IF NOT EXISTS identifiers (
			version TEXT NOT NULL,
			category TEXT NOT NULL,
			ordinal INTEGER NOT NULL,
			identifier TEXT NOT NULL,
			const_name TEXT NOT NULL,
			PRIMARY KEY (version, category, ordinal)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_identifiers_name ON identifiers(identifier, category);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database handle. Safe on a nil index.
func (s *SQLiteIndex) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun replaces every row for (r.Version, r.Category) in one transaction.
// constName maps an identifier to the constant name written to the file.
func (s *SQLiteIndex) RecordRun(r Run, constName func(string) string) error {
	if s == nil {
		return nil
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM identifiers WHERE version=? AND category=?`, r.Version, r.Category); err != nil {
		return fmt.Errorf("clear identifiers: %w", err)
	}
	ins, err := tx.Prepare(`INSERT INTO identifiers(version,category,ordinal,identifier,const_name) VALUES(?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer ins.Close()
	for i, id := range r.IDs {
		if _, err := ins.Exec(r.Version, r.Category, i, id, constName(id)); err != nil {
			return fmt.Errorf("insert %s: %w", id, err)
		}
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO runs(version,category,normalized,jar_sha256,count,recorded_at) VALUES(?,?,?,?,?,?)`,
		r.Version, r.Category, r.Normalized, r.JarSHA256, len(r.IDs), r.RecordedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return tx.Commit()
}

// Identifiers returns the stored list for (version, category) in file order.
func (s *SQLiteIndex) Identifiers(version, category string) ([]string, error) {
	rows, err := s.db.Query(`SELECT identifier FROM identifiers WHERE version=? AND category=? ORDER BY ordinal`, version, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
