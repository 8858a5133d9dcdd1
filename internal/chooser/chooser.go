// Package chooser implements interactive selection with huh.
package chooser

import (
	"context"
	"errors"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrUnavailable is returned when there is no terminal to prompt on.
var ErrUnavailable = errors.New("interactive chooser unavailable: stdin is not a terminal")

// Huh presents a filterable select list on the terminal. The form is drawn on
// stderr so stdout only ever carries the artifact.
type Huh struct{}

// Interactive reports whether stdin is attached to a terminal.
func Interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (Huh) Choose(ctx context.Context, title string, options []string, initial string) (string, error) {
	if !Interactive() {
		return "", ErrUnavailable
	}
	if len(options) == 0 {
		return "", nil
	}

	selected := options[0]
	if slices.Contains(options, initial) {
		selected = initial
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(huh.NewOptions(options...)...).
				Filtering(true).
				Height(min(len(options)+2, 15)).
				Value(&selected),
		),
	).WithProgramOptions(tea.WithOutput(os.Stderr))

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", err
	}
	return selected, nil
}
