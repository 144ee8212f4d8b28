// Package report renders ranked annotations in one of several output formats.
// Formatters only read the annotations they are given.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/colonyops/codetodo/internal/core/annotation"
	"github.com/colonyops/codetodo/internal/core/styles"
)

// Format names an output format.
type Format string

const (
	FormatFancy    Format = "fancy"
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists all output formats.
func Formats() []Format {
	return []Format{FormatFancy, FormatPlain, FormatMarkdown, FormatJSON}
}

// ParseFormat converts a name into a Format. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "md" {
		return FormatMarkdown, nil
	}
	if slices.Contains(Formats(), f) {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Formatter writes a report for a ranked list of annotations.
type Formatter interface {
	Format(w io.Writer, anns []annotation.Annotation) error
}

// Options configures the formatters.
type Options struct {
	// Styler selects the styling strategy. Nil means plain text.
	Styler styles.Styler
	// ShowContext renders captured context lines where the format supports it.
	ShowContext bool
	// RenderMarkdown renders the markdown report for the terminal instead of
	// emitting raw markdown. Only honored for interactive stylers.
	RenderMarkdown bool
	// Width is the terminal width used for markdown rendering.
	Width int
}

// New returns the formatter for format.
func New(format Format, opts Options) (Formatter, error) {
	if opts.Styler == nil {
		opts.Styler = styles.New(styles.Options{})
	}

	switch format {
	case FormatPlain:
		return &Plain{}, nil
	case FormatFancy:
		return &Fancy{
			styler:      opts.Styler,
			showContext: opts.ShowContext,
			highlighter: newHighlighter(opts.Styler),
		}, nil
	case FormatMarkdown:
		tl := &TaskList{showContext: opts.ShowContext}
		if opts.RenderMarkdown && opts.Styler.Interactive() {
			tl.render = newMarkdownRenderer(opts.Width)
		}
		return tl, nil
	case FormatJSON:
		return &JSON{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
