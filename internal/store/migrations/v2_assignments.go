package migrations

import "database/sql"

func init() {
	Register(&v2Assignments{})
}

// v2Assignments adds the assignment audit trail.
type v2Assignments struct{}

func (m *v2Assignments) Version() int {
	return 2
}

func (m *v2Assignments) Description() string {
	return "Add case_assignments audit table"
}

func (m *v2Assignments) Up(db *sql.DB) error {
	return ExecStatements(db, []string{
		`CREATE TABLE IF NOT EXISTS case_assignments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			case_id TEXT NOT NULL REFERENCES cases(id),
			contact_id TEXT NOT NULL REFERENCES contacts(id),
			previous_contact_id TEXT,
			assigned_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_case_assignments_case ON case_assignments(case_id)`,
	})
}
