package contacts

import "strconv"

// CustomDistance is the preset value that reveals free-form radius input.
const CustomDistance = "custom"

// Option is a value/label pair for a selection list.
type Option struct {
	Value string
	Label string
}

// DistancePresets are the radius choices offered before a custom value.
var DistancePresets = []int{5, 10, 15, 25, 50, 75, 100, 150, 200}

// DistanceOptions returns the preset radius options followed by the custom
// entry.
func DistanceOptions() []Option {
	opts := make([]Option, 0, len(DistancePresets)+1)
	for _, d := range DistancePresets {
		v := strconv.Itoa(d)
		opts = append(opts, Option{Value: v, Label: v + " miles"})
	}
	return append(opts, Option{Value: CustomDistance, Label: "Custom distance"})
}

// ModeOptions returns the search mode choices.
func ModeOptions() []Option {
	opts := make([]Option, 0, len(Modes))
	for _, m := range Modes {
		opts = append(opts, Option{Value: m.String(), Label: m.Label()})
	}
	return opts
}

// StateOptions lists the 50 states plus the District of Columbia.
var StateOptions = []Option{
	{"AL", "Alabama"}, {"AK", "Alaska"}, {"AZ", "Arizona"}, {"AR", "Arkansas"},
	{"CA", "California"}, {"CO", "Colorado"}, {"CT", "Connecticut"}, {"DE", "Delaware"},
	{"DC", "District of Columbia"}, {"FL", "Florida"}, {"GA", "Georgia"}, {"HI", "Hawaii"},
	{"ID", "Idaho"}, {"IL", "Illinois"}, {"IN", "Indiana"}, {"IA", "Iowa"},
	{"KS", "Kansas"}, {"KY", "Kentucky"}, {"LA", "Louisiana"}, {"ME", "Maine"},
	{"MD", "Maryland"}, {"MA", "Massachusetts"}, {"MI", "Michigan"}, {"MN", "Minnesota"},
	{"MS", "Mississippi"}, {"MO", "Missouri"}, {"MT", "Montana"}, {"NE", "Nebraska"},
	{"NV", "Nevada"}, {"NH", "New Hampshire"}, {"NJ", "New Jersey"}, {"NM", "New Mexico"},
	{"NY", "New York"}, {"NC", "North Carolina"}, {"ND", "North Dakota"}, {"OH", "Ohio"},
	{"OK", "Oklahoma"}, {"OR", "Oregon"}, {"PA", "Pennsylvania"}, {"RI", "Rhode Island"},
	{"SC", "South Carolina"}, {"SD", "South Dakota"}, {"TN", "Tennessee"}, {"TX", "Texas"},
	{"UT", "Utah"}, {"VT", "Vermont"}, {"VA", "Virginia"}, {"WA", "Washington"},
	{"WV", "West Virginia"}, {"WI", "Wisconsin"}, {"WY", "Wyoming"},
}

// StateName returns the full name for code, or code itself when unknown.
func StateName(code string) string {
	for _, o := range StateOptions {
		if o.Value == code {
			return o.Label
		}
	}
	return code
}

// IsStateCode reports whether code is one of StateOptions.
func IsStateCode(code string) bool {
	for _, o := range StateOptions {
		if o.Value == code {
			return true
		}
	}
	return false
}
