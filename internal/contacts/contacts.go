// Package contacts holds the directory records the picker works with and the
// flattening that turns them into display rows.
package contacts

import (
	"fmt"
	"strconv"
)

// Account is the organization a contact belongs to.
type Account struct {
	ID               string  `json:"id" yaml:"id" toml:"id"`
	Name             string  `json:"name" yaml:"name" toml:"name"`
	BillingState     string  `json:"billing_state,omitempty" yaml:"billing_state,omitempty" toml:"billing_state,omitempty"`
	BillingStateCode string  `json:"billing_state_code,omitempty" yaml:"billing_state_code,omitempty" toml:"billing_state_code,omitempty"`
	Latitude         float64 `json:"latitude,omitempty" yaml:"latitude,omitempty" toml:"latitude,omitempty"`
	Longitude        float64 `json:"longitude,omitempty" yaml:"longitude,omitempty" toml:"longitude,omitempty"`
}

// Contact is a person in the directory as returned by a search operation.
// DistanceFromCase is only populated by distance searches.
type Contact struct {
	ID               string   `json:"id" yaml:"id" toml:"id"`
	Name             string   `json:"name" yaml:"name" toml:"name"`
	Email            string   `json:"email,omitempty" yaml:"email,omitempty" toml:"email,omitempty"`
	Phone            string   `json:"phone,omitempty" yaml:"phone,omitempty" toml:"phone,omitempty"`
	AccountID        string   `json:"account_id,omitempty" yaml:"account_id,omitempty" toml:"account_id,omitempty"`
	Account          *Account `json:"account,omitempty" yaml:"account,omitempty" toml:"account,omitempty"`
	DistanceFromCase *float64 `json:"distance_from_case,omitempty" yaml:"distance_from_case,omitempty" toml:"distance_from_case,omitempty"`
}

// Case is the record a contact gets assigned to.
type Case struct {
	ID          string  `json:"id" yaml:"id" toml:"id"`
	Number      string  `json:"number,omitempty" yaml:"number,omitempty" toml:"number,omitempty"`
	Subject     string  `json:"subject,omitempty" yaml:"subject,omitempty" toml:"subject,omitempty"`
	Status      string  `json:"status,omitempty" yaml:"status,omitempty" toml:"status,omitempty"`
	Latitude    float64 `json:"latitude" yaml:"latitude" toml:"latitude"`
	Longitude   float64 `json:"longitude" yaml:"longitude" toml:"longitude"`
	ContactID   string  `json:"contact_id,omitempty" yaml:"contact_id,omitempty" toml:"contact_id,omitempty"`
	ContactName string  `json:"contact_name,omitempty" yaml:"contact_name,omitempty" toml:"contact_name,omitempty"`
}

// Row is a contact flattened for display. It is rebuilt from scratch for every
// fetched page.
type Row struct {
	ID               string   `json:"id" yaml:"id" toml:"id"`
	Name             string   `json:"name" yaml:"name" toml:"name"`
	Email            string   `json:"email" yaml:"email" toml:"email"`
	Phone            string   `json:"phone" yaml:"phone" toml:"phone"`
	AccountName      string   `json:"account_name" yaml:"account_name" toml:"account_name"`
	AccountStateCode string   `json:"account_state_code" yaml:"account_state_code" toml:"account_state_code"`
	DistanceFromCase *float64 `json:"distance_from_case,omitempty" yaml:"distance_from_case,omitempty" toml:"distance_from_case,omitempty"`
}

// StateCode returns the billing state code, falling back to the billing state
// name, or "" when neither is set.
func (a *Account) StateCode() string {
	if a == nil {
		return ""
	}
	if a.BillingStateCode != "" {
		return a.BillingStateCode
	}
	return a.BillingState
}

// ToRow flattens c into a display row.
func ToRow(c Contact) Row {
	row := Row{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		AccountStateCode: c.Account.StateCode(),
		DistanceFromCase: c.DistanceFromCase,
	}
	if c.Account != nil {
		row.AccountName = c.Account.Name
	}
	return row
}

// ToRows flattens a page of contacts. The result is never nil.
func ToRows(list []Contact) []Row {
	rows := make([]Row, 0, len(list))
	for _, c := range list {
		rows = append(rows, ToRow(c))
	}
	return rows
}

// FormatDistance renders a distance with one decimal place, or "" when unset.
func FormatDistance(d *float64) string {
	if d == nil {
		return ""
	}
	return strconv.FormatFloat(*d, 'f', 1, 64)
}

// Cell returns the display text of the column identified by field.
func (r Row) Cell(field string) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldAccount:
		return r.AccountName
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldState:
		return r.AccountStateCode
	case FieldDistance:
		return FormatDistance(r.DistanceFromCase)
	default:
		return ""
	}
}

func (r Row) String() string {
	return fmt.Sprintf("%s <%s>", r.Name, r.Email)
}
