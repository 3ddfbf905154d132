package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oakwood-commons/contactpicker/internal/directory"
)

// Assignment is one entry of a case's assignment history.
type Assignment struct {
	CaseID            string
	ContactID         string
	PreviousContactID string
	AssignedAt        time.Time
}

// AssignContactToCase sets the case contact and records the change. The
// returned message is meant for display.
func (s *Store) AssignContactToCase(ctx context.Context, a directory.Assignment) (msg string, err error) {
	if a.ContactID == "" || a.CaseID == "" {
		return "", &directory.RemoteError{
			Body: &directory.ErrorBody{Message: "Contact ID and Case ID are required"},
			Err:  directory.ErrInvalidRequest,
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", directory.Errorf("begin assignment: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var contactName string
	query := `SELECT name FROM contacts WHERE id = ?`
	s.logSQL(query, a.ContactID)
	err = tx.QueryRowContext(ctx, query, a.ContactID).Scan(&contactName)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &directory.RemoteError{
			Body: &directory.ErrorBody{Message: fmt.Sprintf("Contact %s does not exist", a.ContactID)},
			Err:  directory.ErrNotFound,
		}
	}
	if err != nil {
		return "", directory.Errorf("load contact: %w", err)
	}

	var number, previous string
	query = `SELECT number, COALESCE(contact_id, '') FROM cases WHERE id = ?`
	s.logSQL(query, a.CaseID)
	err = tx.QueryRowContext(ctx, query, a.CaseID).Scan(&number, &previous)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &directory.RemoteError{
			Body: &directory.ErrorBody{Message: fmt.Sprintf("Case %s does not exist", a.CaseID)},
			Err:  directory.ErrNotFound,
		}
	}
	if err != nil {
		return "", directory.Errorf("load case: %w", err)
	}

	query = `UPDATE cases SET contact_id = ? WHERE id = ?`
	s.logSQL(query, a.ContactID, a.CaseID)
	if _, err = tx.ExecContext(ctx, query, a.ContactID, a.CaseID); err != nil {
		return "", directory.Errorf("update case: %w", err)
	}

	query = `INSERT INTO case_assignments (case_id, contact_id, previous_contact_id, assigned_at) VALUES (?, ?, ?, ?)`
	s.logSQL(query, a.CaseID, a.ContactID, previous)
	if _, err = tx.ExecContext(ctx, query, a.CaseID, a.ContactID, nullIfEmpty(previous), time.Now().UnixNano()); err != nil {
		return "", directory.Errorf("record assignment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return "", directory.Errorf("commit assignment: %w", err)
	}

	s.log.Info("contact assigned", "case_id", a.CaseID, "contact_id", a.ContactID, "previous_contact_id", previous)

	if number == "" {
		number = a.CaseID
	}
	return fmt.Sprintf("%s assigned to case %s", contactName, number), nil
}

// History returns the assignment history of a case, oldest first.
func (s *Store) History(ctx context.Context, caseID string) ([]Assignment, error) {
	query := `
		SELECT case_id, contact_id, COALESCE(previous_contact_id, ''), assigned_at
		FROM case_assignments WHERE case_id = ? ORDER BY id`
	s.logSQL(query, caseID)

	rows, err := s.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("query assignment history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Assignment
	for rows.Next() {
		var (
			a  Assignment
			ts int64
		)
		if err := rows.Scan(&a.CaseID, &a.ContactID, &a.PreviousContactID, &ts); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		a.AssignedAt = time.Unix(0, ts)
		out = append(out, a)
	}

	return out, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
