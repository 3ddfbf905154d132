// Package store implements the contact directory on top of a local SQLite
// database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/oakwood-commons/contactpicker/internal/directory"

	// SQLite driver registered as "sqlite".
	_ "modernc.org/sqlite"
)

// FilePermissions is the mode used for a newly created database file.
const FilePermissions = 0o600

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store is a directory.Service backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	log  logr.Logger
}

var _ directory.Service = (*Store)(nil)

// Open opens (creating if needed) the database at path and migrates it to
// the current schema.
func Open(ctx context.Context, path string, log logr.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases shared and serializes
	// writers on file databases.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path, log: log.WithName("store")}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if path != MemoryPath {
		_ = os.Chmod(path, FilePermissions)
	}

	s.log.V(1).Info("database ready", "path", path, "schema_version", SchemaVersion)

	return s, nil
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) logSQL(query string, args ...any) {
	s.log.V(2).Info("sql", "query", query, "args", args)
}
