package search

import (
	"context"
	"strings"

	"github.com/oakwood-commons/contactpicker/internal/contacts"
	"github.com/oakwood-commons/contactpicker/internal/directory"
	"golang.org/x/sync/errgroup"
)

// Error message prefixes for failed fetches.
const (
	rowsErrorPrefix  = "Error loading contacts: "
	countErrorPrefix = "Error loading contact count: "
)

// Request is one page of one search.
type Request struct {
	Mode       contacts.SearchMode
	Criteria   Criteria
	CaseID     string
	PageNumber int
	PageSize   int
}

// Result is the outcome of a paired fetch. The two halves fail
// independently.
type Result struct {
	Rows     []contacts.Row
	Total    int
	RowsErr  error
	CountErr error
}

// CountQuery builds the count request matching r.
func (r Request) CountQuery() directory.CountQuery {
	q := directory.CountQuery{SearchBySelection: r.Mode, CaseID: r.CaseID}
	switch r.Mode {
	case contacts.ModeName:
		q.Name = strings.TrimSpace(r.Criteria.Name)
	case contacts.ModeState:
		q.StateCode = r.Criteria.StateCode
	case contacts.ModeDistance:
		q.Distance = strings.TrimSpace(r.Criteria.Radius)
	}
	return q
}

func (r Request) fetchRows(ctx context.Context, svc directory.Service) ([]contacts.Contact, error) {
	switch r.Mode {
	case contacts.ModeName:
		return svc.SearchByName(ctx, directory.NameQuery{
			Name:       strings.TrimSpace(r.Criteria.Name),
			PageSize:   r.PageSize,
			PageNumber: r.PageNumber,
		})
	case contacts.ModeState:
		return svc.SearchByState(ctx, directory.StateQuery{
			StateCode:  r.Criteria.StateCode,
			PageSize:   r.PageSize,
			PageNumber: r.PageNumber,
		})
	case contacts.ModeDistance:
		radius, _ := ParseRadius(r.Criteria.Radius)
		return svc.SearchByDistance(ctx, directory.DistanceQuery{
			CaseID:     r.CaseID,
			Radius:     radius,
			PageSize:   r.PageSize,
			PageNumber: r.PageNumber,
		})
	default:
		return nil, directory.ErrInvalidRequest
	}
}

// Fetch issues the row and count calls concurrently and waits for both.
// Each failure is captured in its own field; Fetch itself never fails.
// Callers validate r beforehand.
func Fetch(ctx context.Context, svc directory.Service, r Request) Result {
	var (
		res  Result
		list []contacts.Contact
		g    errgroup.Group
	)
	g.Go(func() error {
		list, res.RowsErr = r.fetchRows(ctx, svc)
		return nil
	})
	g.Go(func() error {
		res.Total, res.CountErr = svc.Count(ctx, r.CountQuery())
		return nil
	})
	_ = g.Wait()

	if res.RowsErr != nil {
		res.Rows = []contacts.Row{}
	} else {
		res.Rows = contacts.ToRows(list)
	}
	if res.CountErr != nil {
		res.Total = 0
	}
	return res
}

// Message derives the status text for a completed fetch. Row failures take
// precedence over count failures, which take precedence over the empty
// result notice. "" means there is nothing to show.
func Message(mode contacts.SearchMode, c Criteria, res Result) string {
	switch {
	case res.RowsErr != nil:
		return rowsErrorPrefix + directory.MessageOf(res.RowsErr)
	case res.CountErr != nil:
		return countErrorPrefix + directory.MessageOf(res.CountErr)
	case len(res.Rows) == 0:
		return EmptyResultMessage(mode, c)
	default:
		return ""
	}
}
