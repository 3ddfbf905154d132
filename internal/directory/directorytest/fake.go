// Package directorytest provides an in-memory directory.Service for tests.
package directorytest

import (
	"context"
	"strings"
	"sync"

	"github.com/oakwood-commons/contactpicker/internal/contacts"
	"github.com/oakwood-commons/contactpicker/internal/directory"
	"github.com/oakwood-commons/contactpicker/internal/pager"
)

// Fake answers searches from Contacts and records every call. Error fields
// make the matching operation fail. Gate, when set, is received from before
// any search or count returns, letting tests control completion order.
type Fake struct {
	mu sync.Mutex

	Contacts []contacts.Contact
	Cases    map[string]contacts.Case

	SearchErr error
	CountErr  error
	AssignErr error
	AssignMsg string

	Gate chan struct{}

	NameCalls     []directory.NameQuery
	StateCalls    []directory.StateQuery
	DistanceCalls []directory.DistanceQuery
	CountCalls    []directory.CountQuery
	Assignments   []directory.Assignment
}

var _ directory.Service = (*Fake)(nil)

func (f *Fake) gate(ctx context.Context) error {
	f.mu.Lock()
	g := f.Gate
	f.mu.Unlock()
	if g == nil {
		return nil
	}
	select {
	case <-g:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fake) matchName(name string) []contacts.Contact {
	var out []contacts.Contact
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, c := range f.Contacts {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) matchState(code string) []contacts.Contact {
	var out []contacts.Contact
	for _, c := range f.Contacts {
		if c.Account.StateCode() == code {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) matchDistance(radius float64) []contacts.Contact {
	var out []contacts.Contact
	for _, c := range f.Contacts {
		if c.DistanceFromCase != nil && *c.DistanceFromCase <= radius {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) SearchByName(ctx context.Context, q directory.NameQuery) ([]contacts.Contact, error) {
	f.mu.Lock()
	f.NameCalls = append(f.NameCalls, q)
	err := f.SearchErr
	matches := f.matchName(q.Name)
	f.mu.Unlock()
	if gerr := f.gate(ctx); gerr != nil {
		return nil, gerr
	}
	if err != nil {
		return nil, err
	}
	return pager.Window(matches, q.PageNumber, q.PageSize), nil
}

func (f *Fake) SearchByState(ctx context.Context, q directory.StateQuery) ([]contacts.Contact, error) {
	f.mu.Lock()
	f.StateCalls = append(f.StateCalls, q)
	err := f.SearchErr
	matches := f.matchState(q.StateCode)
	f.mu.Unlock()
	if gerr := f.gate(ctx); gerr != nil {
		return nil, gerr
	}
	if err != nil {
		return nil, err
	}
	return pager.Window(matches, q.PageNumber, q.PageSize), nil
}

func (f *Fake) SearchByDistance(ctx context.Context, q directory.DistanceQuery) ([]contacts.Contact, error) {
	f.mu.Lock()
	f.DistanceCalls = append(f.DistanceCalls, q)
	err := f.SearchErr
	matches := f.matchDistance(q.Radius)
	f.mu.Unlock()
	if gerr := f.gate(ctx); gerr != nil {
		return nil, gerr
	}
	if err != nil {
		return nil, err
	}
	return pager.Window(matches, q.PageNumber, q.PageSize), nil
}

func (f *Fake) Count(ctx context.Context, q directory.CountQuery) (int, error) {
	f.mu.Lock()
	f.CountCalls = append(f.CountCalls, q)
	err := f.CountErr
	var n int
	switch q.SearchBySelection {
	case contacts.ModeName:
		n = len(f.matchName(q.Name))
	case contacts.ModeState:
		n = len(f.matchState(q.StateCode))
	case contacts.ModeDistance:
		n = len(f.matchDistance(parseRadius(q.Distance)))
	}
	f.mu.Unlock()
	if gerr := f.gate(ctx); gerr != nil {
		return 0, gerr
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (f *Fake) AssignContactToCase(_ context.Context, a directory.Assignment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Assignments = append(f.Assignments, a)
	if f.AssignErr != nil {
		return "", f.AssignErr
	}
	return f.AssignMsg, nil
}

func (f *Fake) GetCase(_ context.Context, caseID string) (contacts.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.Cases[caseID]
	if !ok {
		return contacts.Case{}, directory.ErrNotFound
	}
	return c, nil
}

// Calls returns the number of search and count calls recorded so far.
func (f *Fake) Calls() (searches, counts int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.NameCalls) + len(f.StateCalls) + len(f.DistanceCalls), len(f.CountCalls)
}

// LastName returns the most recent name query.
func (f *Fake) LastName() (directory.NameQuery, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.NameCalls) == 0 {
		return directory.NameQuery{}, false
	}
	return f.NameCalls[len(f.NameCalls)-1], true
}
