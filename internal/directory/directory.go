// Package directory defines the remote contact-directory operations the
// picker depends on, together with their request and error types.
package directory

import (
	"context"

	"github.com/oakwood-commons/contactpicker/internal/contacts"
)

// NameQuery asks for one page of contacts whose name matches Name.
type NameQuery struct {
	Name       string
	PageSize   int
	PageNumber int
}

// StateQuery asks for one page of contacts whose account bills in StateCode.
type StateQuery struct {
	StateCode  string
	PageSize   int
	PageNumber int
}

// DistanceQuery asks for one page of contacts within Radius miles of the
// location of case CaseID, nearest first.
type DistanceQuery struct {
	CaseID     string
	Radius     float64
	PageSize   int
	PageNumber int
}

// CountQuery asks for the total number of matches of a search. Only the
// fields of the selected mode are meaningful. Distance is the radius as the
// user entered it.
type CountQuery struct {
	SearchBySelection contacts.SearchMode
	Name              string
	StateCode         string
	Distance          string
	CaseID            string
}

// Assignment links a contact to a case.
type Assignment struct {
	ContactID string
	CaseID    string
}

// Service is the set of remote operations backing the picker.
type Service interface {
	SearchByName(ctx context.Context, q NameQuery) ([]contacts.Contact, error)
	SearchByState(ctx context.Context, q StateQuery) ([]contacts.Contact, error)
	SearchByDistance(ctx context.Context, q DistanceQuery) ([]contacts.Contact, error)
	Count(ctx context.Context, q CountQuery) (int, error)
	AssignContactToCase(ctx context.Context, a Assignment) (string, error)
	GetCase(ctx context.Context, caseID string) (contacts.Case, error)
}
