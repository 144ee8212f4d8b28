// Package styles selects how report text is decorated. Interactive output is
// colored with lipgloss; redirected output is left untouched.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Options are computed once at startup and passed to whoever renders output.
type Options struct {
	Interactive bool
	Theme       string
}

// Styler decorates text for one output strategy.
type Styler interface {
	Error(s string) string
	Warning(s string) string
	Success(s string) string
	Muted(s string) string
	Bold(s string) string

	DoneIcon() string
	PendingIcon() string

	// Palette returns the active palette. Plain stylers return the default one.
	Palette() Palette
	Interactive() bool
}

// New returns the Styler for opts. Unknown themes fall back to DefaultTheme.
func New(opts Options) Styler {
	palette, ok := GetPalette(opts.Theme)
	if !ok {
		palette, _ = GetPalette(DefaultTheme)
	}

	if !opts.Interactive {
		return plainStyler{palette: palette}
	}

	return &colorStyler{
		palette: palette,
		errorStyle: lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true),
		warningStyle: lipgloss.NewStyle().
			Foreground(palette.Warning).
			Bold(true),
		successStyle: lipgloss.NewStyle().
			Foreground(palette.Success),
		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.Muted),
		boldStyle: lipgloss.NewStyle().
			Foreground(palette.Foreground).
			Bold(true),
	}
}

type colorStyler struct {
	palette Palette

	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	successStyle lipgloss.Style
	mutedStyle   lipgloss.Style
	boldStyle    lipgloss.Style
}

func (s *colorStyler) Error(v string) string   { return s.errorStyle.Render(v) }
func (s *colorStyler) Warning(v string) string { return s.warningStyle.Render(v) }
func (s *colorStyler) Success(v string) string { return s.successStyle.Render(v) }
func (s *colorStyler) Muted(v string) string   { return s.mutedStyle.Render(v) }
func (s *colorStyler) Bold(v string) string    { return s.boldStyle.Render(v) }
func (s *colorStyler) DoneIcon() string        { return IconDone }
func (s *colorStyler) PendingIcon() string     { return IconPending }
func (s *colorStyler) Palette() Palette        { return s.palette }
func (s *colorStyler) Interactive() bool       { return true }

type plainStyler struct {
	palette Palette
}

func (plainStyler) Error(v string) string   { return v }
func (plainStyler) Warning(v string) string { return v }
func (plainStyler) Success(v string) string { return v }
func (plainStyler) Muted(v string) string   { return v }
func (plainStyler) Bold(v string) string    { return v }
func (plainStyler) DoneIcon() string        { return IconDoneASCII }
func (plainStyler) PendingIcon() string     { return IconPendingASCII }
func (s plainStyler) Palette() Palette      { return s.palette }
func (plainStyler) Interactive() bool       { return false }
