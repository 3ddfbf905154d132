package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/oakwood-commons/contactpicker/internal/contacts"
	"github.com/oakwood-commons/contactpicker/internal/directory"
	"github.com/oakwood-commons/contactpicker/internal/pager"
	"github.com/oakwood-commons/contactpicker/internal/search"
)

const selectContacts = `
	SELECT c.id, c.name, c.email, c.phone, COALESCE(c.account_id, ''),
		COALESCE(a.name, ''), COALESCE(a.billing_state, ''), COALESCE(a.billing_state_code, ''),
		a.latitude, a.longitude
	FROM contacts c
	LEFT JOIN accounts a ON a.id = c.account_id`

// nameFilter matches names containing the search text, case-insensitively.
const nameFilter = ` WHERE c.name LIKE '%' || ? || '%' ESCAPE '\'`

// stateFilter matches the billing state code, or the billing state name for
// accounts without a code.
const stateFilter = ` WHERE a.billing_state_code = ? OR (a.billing_state_code = '' AND a.billing_state = ?)`

const ordering = ` ORDER BY c.name COLLATE NOCASE, c.id`

type scannedContact struct {
	contact contacts.Contact
	lat     sql.NullFloat64
	lon     sql.NullFloat64
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (s *Store) queryContacts(ctx context.Context, query string, args ...any) ([]scannedContact, error) {
	s.logSQL(query, args...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, directory.Errorf("query contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []scannedContact
	for rows.Next() {
		var (
			sc      scannedContact
			account contacts.Account
		)
		if err := rows.Scan(
			&sc.contact.ID, &sc.contact.Name, &sc.contact.Email, &sc.contact.Phone, &sc.contact.AccountID,
			&account.Name, &account.BillingState, &account.BillingStateCode,
			&sc.lat, &sc.lon,
		); err != nil {
			return nil, directory.Errorf("scan contact: %w", err)
		}
		if sc.contact.AccountID != "" {
			account.ID = sc.contact.AccountID
			account.Latitude = sc.lat.Float64
			account.Longitude = sc.lon.Float64
			sc.contact.Account = &account
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, directory.Errorf("iterate contacts: %w", err)
	}

	return out, nil
}

func checkPage(size, number int) error {
	if err := (pager.Page{Number: number, Size: size}).Validate(); err != nil {
		return &directory.RemoteError{Message: err.Error(), Err: directory.ErrInvalidRequest}
	}
	return nil
}

func (s *Store) pagedContacts(ctx context.Context, where string, size, number int, args ...any) ([]contacts.Contact, error) {
	if err := checkPage(size, number); err != nil {
		return nil, err
	}

	query := selectContacts + where + ordering + ` LIMIT ? OFFSET ?`
	args = append(args, size, (number-1)*size)

	scanned, err := s.queryContacts(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	out := make([]contacts.Contact, 0, len(scanned))
	for _, sc := range scanned {
		out = append(out, sc.contact)
	}
	return out, nil
}

// SearchByName returns one page of contacts whose name contains q.Name.
func (s *Store) SearchByName(ctx context.Context, q directory.NameQuery) ([]contacts.Contact, error) {
	name := strings.TrimSpace(q.Name)
	if name == "" {
		return nil, &directory.RemoteError{Message: search.MsgEnterName, Err: directory.ErrInvalidRequest}
	}
	return s.pagedContacts(ctx, nameFilter, q.PageSize, q.PageNumber, escapeLike(name))
}

// SearchByState returns one page of contacts whose account bills in
// q.StateCode.
func (s *Store) SearchByState(ctx context.Context, q directory.StateQuery) ([]contacts.Contact, error) {
	if q.StateCode == "" {
		return nil, &directory.RemoteError{Message: search.MsgSelectState, Err: directory.ErrInvalidRequest}
	}
	return s.pagedContacts(ctx, stateFilter, q.PageSize, q.PageNumber, q.StateCode, contacts.StateName(q.StateCode))
}

// withinRadius returns every contact whose account lies within radius miles
// of the case, nearest first.
func (s *Store) withinRadius(ctx context.Context, caseID string, radius float64) ([]contacts.Contact, error) {
	if radius <= 0 {
		return nil, &directory.RemoteError{Message: search.MsgInvalidDistance, Err: directory.ErrInvalidRequest}
	}

	c, err := s.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	scanned, err := s.queryContacts(ctx, selectContacts+` WHERE a.latitude IS NOT NULL AND a.longitude IS NOT NULL`+ordering)
	if err != nil {
		return nil, err
	}

	var out []contacts.Contact
	for _, sc := range scanned {
		d := haversineMiles(c.Latitude, c.Longitude, sc.lat.Float64, sc.lon.Float64)
		if d > radius {
			continue
		}
		contact := sc.contact
		contact.DistanceFromCase = &d
		out = append(out, contact)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].DistanceFromCase < *out[j].DistanceFromCase
	})

	return out, nil
}

// SearchByDistance returns one page of contacts within q.Radius miles of the
// case location.
func (s *Store) SearchByDistance(ctx context.Context, q directory.DistanceQuery) ([]contacts.Contact, error) {
	if err := checkPage(q.PageSize, q.PageNumber); err != nil {
		return nil, err
	}

	all, err := s.withinRadius(ctx, q.CaseID, q.Radius)
	if err != nil {
		return nil, err
	}

	return pager.Window(all, q.PageNumber, q.PageSize), nil
}

// Count returns the total number of matches for the selected search.
func (s *Store) Count(ctx context.Context, q directory.CountQuery) (int, error) {
	switch q.SearchBySelection {
	case contacts.ModeName:
		name := strings.TrimSpace(q.Name)
		if name == "" {
			return 0, nil
		}
		return s.countWhere(ctx, nameFilter, escapeLike(name))
	case contacts.ModeState:
		if q.StateCode == "" {
			return 0, nil
		}
		return s.countWhere(ctx, stateFilter, q.StateCode, contacts.StateName(q.StateCode))
	case contacts.ModeDistance:
		radius, ok := search.ParseRadius(q.Distance)
		if !ok || q.CaseID == "" {
			return 0, nil
		}
		all, err := s.withinRadius(ctx, q.CaseID, radius)
		if err != nil {
			return 0, err
		}
		return len(all), nil
	default:
		return 0, &directory.RemoteError{
			Message: fmt.Sprintf("unsupported search selection %s", q.SearchBySelection),
			Err:     directory.ErrInvalidRequest,
		}
	}
}

func (s *Store) countWhere(ctx context.Context, where string, args ...any) (int, error) {
	query := `SELECT COUNT(*) FROM contacts c LEFT JOIN accounts a ON a.id = c.account_id` + where
	s.logSQL(query, args...)

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, directory.Errorf("count contacts: %w", err)
	}
	return n, nil
}

// GetCase loads a case with its assigned contact name.
func (s *Store) GetCase(ctx context.Context, caseID string) (contacts.Case, error) {
	query := `
		SELECT cs.id, cs.number, cs.subject, cs.status,
			COALESCE(cs.latitude, 0), COALESCE(cs.longitude, 0),
			COALESCE(cs.contact_id, ''), COALESCE(ct.name, '')
		FROM cases cs
		LEFT JOIN contacts ct ON ct.id = cs.contact_id
		WHERE cs.id = ?`
	s.logSQL(query, caseID)

	var c contacts.Case
	err := s.db.QueryRowContext(ctx, query, caseID).Scan(
		&c.ID, &c.Number, &c.Subject, &c.Status, &c.Latitude, &c.Longitude, &c.ContactID, &c.ContactName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return contacts.Case{}, &directory.RemoteError{
			Body: &directory.ErrorBody{Message: fmt.Sprintf("Case %s does not exist", caseID)},
			Err:  directory.ErrNotFound,
		}
	}
	if err != nil {
		return contacts.Case{}, directory.Errorf("load case: %w", err)
	}
	return c, nil
}
