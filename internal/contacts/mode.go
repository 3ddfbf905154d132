package contacts

import (
	"fmt"
	"strings"
)

// SearchMode selects which search strategy is active. Exactly one mode is
// active at a time.
type SearchMode int

const (
	ModeName SearchMode = iota
	ModeState
	ModeDistance
)

// Modes lists every search mode in display order.
var Modes = []SearchMode{ModeName, ModeState, ModeDistance}

// String returns the wire value of the mode ("name", "state", "distance").
func (m SearchMode) String() string {
	switch m {
	case ModeName:
		return "name"
	case ModeState:
		return "state"
	case ModeDistance:
		return "distance"
	default:
		return fmt.Sprintf("SearchMode(%d)", int(m))
	}
}

// Label returns the human-readable name of the mode.
func (m SearchMode) Label() string {
	switch m {
	case ModeName:
		return "Name"
	case ModeState:
		return "State"
	case ModeDistance:
		return "Distance"
	default:
		return m.String()
	}
}

// ParseSearchMode converts a wire value back into a SearchMode.
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return ModeName, nil
	case "state":
		return ModeState, nil
	case "distance":
		return ModeDistance, nil
	default:
		return ModeName, fmt.Errorf("unknown search mode %q (expected name, state or distance)", s)
	}
}

// Next cycles to the following mode, wrapping around.
func (m SearchMode) Next() SearchMode {
	return Modes[(int(m)+1)%len(Modes)]
}

// Prev cycles to the preceding mode, wrapping around.
func (m SearchMode) Prev() SearchMode {
	return Modes[(int(m)+len(Modes)-1)%len(Modes)]
}

// Set, Type and String make *SearchMode usable as a pflag.Value.
func (m *SearchMode) Set(s string) error {
	parsed, err := ParseSearchMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m *SearchMode) Type() string { return "mode" }
