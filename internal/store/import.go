package store

import (
	"context"
	"fmt"

	"github.com/oakwood-commons/contactpicker/internal/contacts"
)

// Dataset is a bulk load of directory records. Contacts reference accounts
// by AccountID; an embedded Account is imported as well.
type Dataset struct {
	Accounts []contacts.Account `json:"accounts" yaml:"accounts" toml:"accounts"`
	Contacts []contacts.Contact `json:"contacts" yaml:"contacts" toml:"contacts"`
	Cases    []contacts.Case    `json:"cases" yaml:"cases" toml:"cases"`
}

// ImportStats counts the records written by Import.
type ImportStats struct {
	Accounts int
	Contacts int
	Cases    int
}

// Import inserts or updates every record of ds in a single transaction.
func (s *Store) Import(ctx context.Context, ds Dataset) (stats ImportStats, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const upsertAccount = `
		INSERT INTO accounts (id, name, billing_state, billing_state_code, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, billing_state = excluded.billing_state,
			billing_state_code = excluded.billing_state_code, latitude = excluded.latitude, longitude = excluded.longitude`
	const upsertContact = `
		INSERT INTO contacts (id, name, email, phone, account_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email,
			phone = excluded.phone, account_id = excluded.account_id`
	const upsertCase = `
		INSERT INTO cases (id, number, subject, status, latitude, longitude, contact_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET number = excluded.number, subject = excluded.subject,
			status = excluded.status, latitude = excluded.latitude, longitude = excluded.longitude,
			contact_id = excluded.contact_id`

	accounts := append([]contacts.Account(nil), ds.Accounts...)
	for _, c := range ds.Contacts {
		if c.Account != nil && c.Account.ID != "" {
			accounts = append(accounts, *c.Account)
		}
	}

	for _, a := range accounts {
		if a.ID == "" || a.Name == "" {
			return stats, fmt.Errorf("account %q: id and name are required", a.ID)
		}
		s.logSQL(upsertAccount, a.ID)
		if _, err = tx.ExecContext(ctx, upsertAccount, a.ID, a.Name, a.BillingState, a.BillingStateCode,
			nullIfZeroCoords(a.Latitude, a.Longitude), nullIfZeroCoords(a.Longitude, a.Latitude)); err != nil {
			return stats, fmt.Errorf("import account %s: %w", a.ID, err)
		}
		stats.Accounts++
	}

	for _, c := range ds.Contacts {
		if c.ID == "" || c.Name == "" {
			return stats, fmt.Errorf("contact %q: id and name are required", c.ID)
		}
		accountID := c.AccountID
		if accountID == "" && c.Account != nil {
			accountID = c.Account.ID
		}
		s.logSQL(upsertContact, c.ID)
		if _, err = tx.ExecContext(ctx, upsertContact, c.ID, c.Name, c.Email, c.Phone, nullIfEmpty(accountID)); err != nil {
			return stats, fmt.Errorf("import contact %s: %w", c.ID, err)
		}
		stats.Contacts++
	}

	for _, cs := range ds.Cases {
		if cs.ID == "" {
			return stats, fmt.Errorf("case: id is required")
		}
		status := cs.Status
		if status == "" {
			status = "New"
		}
		s.logSQL(upsertCase, cs.ID)
		if _, err = tx.ExecContext(ctx, upsertCase, cs.ID, cs.Number, cs.Subject, status,
			cs.Latitude, cs.Longitude, nullIfEmpty(cs.ContactID)); err != nil {
			return stats, fmt.Errorf("import case %s: %w", cs.ID, err)
		}
		stats.Cases++
	}

	if err = tx.Commit(); err != nil {
		return stats, fmt.Errorf("failed to commit import: %w", err)
	}

	s.log.Info("dataset imported", "accounts", stats.Accounts, "contacts", stats.Contacts, "cases", stats.Cases)

	return stats, nil
}

// nullIfZeroCoords stores v, or NULL when both coordinates are zero so that
// accounts without a location are skipped by distance searches.
func nullIfZeroCoords(v, other float64) any {
	if v == 0 && other == 0 {
		return nil
	}
	return v
}
