// Package store persists domain graphs and learner groups in SQLite and
// serves them back as a catalog.Catalog.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed catalog.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open opens the catalog database at dsn, creating the catalog tables on
// first use. Existing domains and groups are left in place.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{db: db, drv: entsql.OpenDB(dialect.SQLite, db)}
	if err := s.migrate(context.Background()); err != nil {
		s.Close()
		return nil, fmt.Errorf("create catalog tables: %w", err)
	}
	return s, nil
}

// DB exposes the connection pool, mainly for tests that inspect rows.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.drv.Close()
}

// applyPragmas sets the connection options the catalog relies on. The
// migrator refuses to run with foreign keys off.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath picks the catalog file: LESSONLENS_DB when set, otherwise
// lessonlens/lessonlens.db under the XDG data directory. The parent
// directory is created.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LESSONLENS_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lessonlens", "lessonlens.db")
	return p, EnsureDir(p)
}

// EnsureDir makes sure the directory holding path exists.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
