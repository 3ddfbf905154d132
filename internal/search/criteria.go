// Package search holds the mode-independent search core: criteria
// validation, request building, the paired row/count fetch and the
// derivation of the status message shown after a fetch.
package search

import (
	"math"
	"strconv"
	"strings"

	"github.com/oakwood-commons/contactpicker/internal/contacts"
)

// Validation messages.
const (
	MsgEnterName       = "Please enter a name to search"
	MsgSelectState     = "Please select a state"
	MsgInvalidDistance = "Please enter a valid distance value"
	MsgNoCaseDistance  = "Case ID not available for distance search"
)

// Criteria holds the input of every mode. Only the fields of the active mode
// are meaningful; the rest are kept empty. Radius is kept as entered so empty
// result messages echo the user's text.
type Criteria struct {
	Name         string
	StateCode    string
	Radius       string
	CustomRadius bool
}

// ValidationError reports input that must be corrected before searching.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ParseRadius accepts a positive, finite decimal number of miles.
func ParseRadius(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// Validate checks that c holds a searchable value for mode. caseID is only
// consulted for distance searches.
func Validate(mode contacts.SearchMode, c Criteria, caseID string) error {
	switch mode {
	case contacts.ModeName:
		if strings.TrimSpace(c.Name) == "" {
			return &ValidationError{Message: MsgEnterName}
		}
	case contacts.ModeState:
		if strings.TrimSpace(c.StateCode) == "" {
			return &ValidationError{Message: MsgSelectState}
		}
	case contacts.ModeDistance:
		if _, ok := ParseRadius(c.Radius); !ok {
			return &ValidationError{Message: MsgInvalidDistance}
		}
		if strings.TrimSpace(caseID) == "" {
			return &ValidationError{Message: MsgNoCaseDistance}
		}
	}
	return nil
}

// EmptyResultMessage is shown when a successful search returns no rows.
func EmptyResultMessage(mode contacts.SearchMode, c Criteria) string {
	switch mode {
	case contacts.ModeName:
		return "No contacts found for the entered name: " + strings.TrimSpace(c.Name)
	case contacts.ModeState:
		return "No contacts found for the selected state: " + c.StateCode
	case contacts.ModeDistance:
		return "No contacts found within " + strings.TrimSpace(c.Radius) + " miles of the case location"
	default:
		return ""
	}
}
