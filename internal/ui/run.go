package ui

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// Default terminal size when detection fails.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

var termGetSize = term.GetSize

// TerminalSize returns the size of the terminal behind f, falling back to
// DefaultWidth x DefaultHeight.
func TerminalSize(f *os.File) (int, int) {
	if f != nil {
		if w, h, err := termGetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return DefaultWidth, DefaultHeight
}

// Run starts the program for root and blocks until it exits. The modal is
// torn down on the way out, whatever the exit reason.
func Run(ctx context.Context, root *RootModel, opts ...tea.ProgramOption) error {
	defer root.Teardown()
	w, h := TerminalSize(os.Stdout)
	base := []tea.ProgramOption{tea.WithContext(ctx), tea.WithWindowSize(w, h)}
	prog := tea.NewProgram(root, append(base, opts...)...)
	_, err := prog.Run()
	return err
}
