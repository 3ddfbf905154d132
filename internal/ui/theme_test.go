package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/oakwood-commons/contactpicker/internal/config"
)

func TestThemeFromConfig(t *testing.T) {
	th := ThemeFromConfig(config.ThemeColors{Accent: "#ff0000", Error: " "}, false)
	assert.Equal(t, lipgloss.Color("#ff0000"), th.Accent)
	assert.Equal(t, fallbackTheme().Error, th.Error, "blank entries keep the fallback")
	assert.False(t, th.NoColor)
}

func TestSetTheme(t *testing.T) {
	orig := CurrentTheme()
	defer SetTheme(orig)

	SetTheme(ThemeFromConfig(config.ThemeColors{}, true))
	assert.True(t, CurrentTheme().NoColor)
	assert.Equal(t, "plain", CurrentTheme().Fg(CurrentTheme().Accent).Render("plain"))
}

func TestToastVariantString(t *testing.T) {
	assert.Equal(t, "info", ToastInfo.String())
	assert.Equal(t, "success", ToastSuccess.String())
	assert.Equal(t, "warning", ToastWarning.String())
	assert.Equal(t, "error", ToastError.String())
}

func TestMakerFunc(t *testing.T) {
	var gotID string
	mk := MakerFunc(func(id string, w, h int) (ChildModel, tea.Cmd) {
		gotID = id
		return &mockChild{id: id}, nil
	})
	c, _ := mk.Make("500-0009", 10, 10)
	assert.Equal(t, "500-0009", gotID)
	assert.Equal(t, "500-0009 view", c.View())
}
