package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/oakwood-commons/contactpicker/internal/store/migrations"
)

// SchemaVersion is the schema version a fully migrated database reports.
var SchemaVersion = migrations.LatestVersion()

// Base schema (v1).
const (
	createMetadataTable = `
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`

	createAccountsTable = `
		CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			billing_state TEXT NOT NULL DEFAULT '',
			billing_state_code TEXT NOT NULL DEFAULT '',
			latitude REAL,
			longitude REAL
		)`

	createAccountsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_accounts_state_code ON accounts(billing_state_code);
		CREATE INDEX IF NOT EXISTS idx_accounts_state ON accounts(billing_state)`

	createContactsTable = `
		CREATE TABLE IF NOT EXISTS contacts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			account_id TEXT REFERENCES accounts(id)
		)`

	createContactsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts(name COLLATE NOCASE);
		CREATE INDEX IF NOT EXISTS idx_contacts_account ON contacts(account_id)`

	createCasesTable = `
		CREATE TABLE IF NOT EXISTS cases (
			id TEXT PRIMARY KEY,
			number TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'New',
			latitude REAL,
			longitude REAL,
			contact_id TEXT REFERENCES contacts(id)
		)`
)

func (s *Store) initSchema(ctx context.Context) error {
	statements := []string{
		createMetadataTable,
		createAccountsTable,
		createAccountsIndexes,
		createContactsTable,
		createContactsIndexes,
		createCasesTable,
	}

	for _, stmt := range statements {
		s.logSQL(stmt)

		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}

// schemaVersion returns the stored schema version, or 0 for a new database.
func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	var version int

	query := "SELECT value FROM metadata WHERE key = 'schema_version'"
	s.logSQL(query)

	err := s.db.QueryRowContext(ctx, query).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}

	return version, nil
}

func (s *Store) setSchemaVersion(ctx context.Context, version int) error {
	query := "INSERT OR REPLACE INTO metadata (key, value) VALUES ('schema_version', ?)"
	s.logSQL(query, version)

	if _, err := s.db.ExecContext(ctx, query, version); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	return nil
}

// migrate brings the schema up to SchemaVersion.
func (s *Store) migrate(ctx context.Context) error {
	if err := s.initSchema(ctx); err != nil {
		return err
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	pending := migrations.GetPending(max(current, 1))
	for _, m := range pending {
		s.log.V(1).Info("applying migration", "version", m.Version(), "description", m.Description())

		if err := m.Up(s.db); err != nil {
			return fmt.Errorf("migration v%d failed: %w", m.Version(), err)
		}
	}

	if current == SchemaVersion {
		return nil
	}

	return s.setSchemaVersion(ctx, SchemaVersion)
}
