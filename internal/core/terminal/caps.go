// Package terminal detects the capabilities of the streams a run writes to.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the terminal width cannot be determined.
const DefaultWidth = 80

// Caps describes the output terminal.
type Caps struct {
	// Interactive is true when stdout is a terminal. Redirected or piped output
	// is never interactive.
	Interactive bool
	// Progress is true when live progress can be drawn on stderr.
	Progress bool
	// Width of stdout in columns.
	Width int
}

// Detect inspects stdout and stderr of the current process. NO_COLOR and
// TERM=dumb force non-interactive output.
func Detect() Caps {
	return detect(os.Stdout, os.Stderr, os.Getenv)
}

type fder interface {
	Fd() uintptr
}

func detect(stdout, stderr fder, getenv func(string) string) Caps {
	caps := Caps{Width: DefaultWidth}

	if getenv("NO_COLOR") != "" || getenv("TERM") == "dumb" {
		return caps
	}

	caps.Interactive = IsTerminal(stdout)
	caps.Progress = caps.Interactive && IsTerminal(stderr)

	if caps.Interactive {
		if w, _, err := term.GetSize(int(stdout.Fd())); err == nil && w > 0 {
			caps.Width = w
		}
	}

	return caps
}

// IsTerminal reports whether f refers to a terminal.
func IsTerminal(f fder) bool {
	return term.IsTerminal(int(f.Fd()))
}
