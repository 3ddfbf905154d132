package migrations

import "database/sql"

func init() {
	Register(&v3AccountGeoIndex{})
}

// v3AccountGeoIndex indexes account coordinates for distance candidate scans.
type v3AccountGeoIndex struct{}

func (m *v3AccountGeoIndex) Version() int {
	return 3
}

func (m *v3AccountGeoIndex) Description() string {
	return "Index account coordinates"
}

func (m *v3AccountGeoIndex) Up(db *sql.DB) error {
	return ExecStatements(db, []string{
		`CREATE INDEX IF NOT EXISTS idx_accounts_geo ON accounts(latitude, longitude)`,
	})
}
