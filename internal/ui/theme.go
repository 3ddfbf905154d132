package ui

import (
	"image/color"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/contactpicker/internal/config"
)

// Theme defines colors used across the UI.
type Theme struct {
	Accent     color.Color // titles, focused controls
	Text       color.Color // regular text
	Muted      color.Color // hints, disabled controls
	Border     color.Color // frames and separators
	HeaderBG   color.Color // table header background
	SelectedFG color.Color // table cursor row
	SelectedBG color.Color
	Error      color.Color
	Warning    color.Color
	Success    color.Color
	Info       color.Color
	NoColor    bool
}

var (
	themeMu      sync.RWMutex
	currentTheme = fallbackTheme()
)

// fallbackTheme is used until SetTheme is called.
func fallbackTheme() Theme {
	return Theme{
		Accent:     lipgloss.Color("81"),
		Text:       lipgloss.Color("252"),
		Muted:      lipgloss.Color("245"),
		Border:     lipgloss.Color("238"),
		HeaderBG:   lipgloss.Color("236"),
		SelectedFG: lipgloss.Color("255"),
		SelectedBG: lipgloss.Color("24"),
		Error:      lipgloss.Color("203"),
		Warning:    lipgloss.Color("221"),
		Success:    lipgloss.Color("114"),
		Info:       lipgloss.Color("81"),
	}
}

// ThemeFromConfig builds a Theme from configured color strings. Empty
// entries keep the fallback color.
func ThemeFromConfig(c config.ThemeColors, noColor bool) Theme {
	t := fallbackTheme()
	set := func(dst *color.Color, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&t.Accent, c.Accent)
	set(&t.Text, c.Text)
	set(&t.Muted, c.Muted)
	set(&t.Border, c.Border)
	set(&t.HeaderBG, c.HeaderBG)
	set(&t.SelectedFG, c.SelectedFG)
	set(&t.SelectedBG, c.SelectedBG)
	set(&t.Error, c.Error)
	set(&t.Warning, c.Warning)
	set(&t.Success, c.Success)
	set(&t.Info, c.Info)
	t.NoColor = noColor
	return t
}

// SetTheme overrides the global theme.
func SetTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = t
}

// CurrentTheme returns the active theme.
func CurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// Fg returns a style with foreground c, or a plain style in no-color mode.
func (t Theme) Fg(c color.Color) lipgloss.Style {
	if t.NoColor || c == nil {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}

// Title styles headings.
func (t Theme) Title() lipgloss.Style {
	return t.Fg(t.Accent).Bold(true)
}

// Hint styles secondary text.
func (t Theme) Hint() lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle().Faint(true)
	}
	return t.Fg(t.Muted)
}

// Frame returns the bordered box used for panels and the modal.
func (t Theme) Frame() lipgloss.Style {
	s := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if !t.NoColor {
		s = s.BorderForeground(t.Border)
	}
	return s
}

// Focused styles the control holding keyboard focus.
func (t Theme) Focused() lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle().Reverse(true)
	}
	return lipgloss.NewStyle().Foreground(t.SelectedFG).Background(t.SelectedBG)
}
