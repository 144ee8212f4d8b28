package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/colonyops/codetodo/internal/core/annotation"
)

// TaskList writes a markdown checkbox list, one item per annotation, with
// context as an indented fenced code block.
type TaskList struct {
	showContext bool
	// render turns markdown into terminal output. Nil writes raw markdown.
	render func(md string) (string, error)
}

func (t *TaskList) Format(w io.Writer, anns []annotation.Annotation) error {
	var b strings.Builder
	for _, a := range anns {
		t.writeOne(&b, a)
	}

	out := b.String()
	if t.render != nil && out != "" {
		rendered, err := t.render(out)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		out = rendered
	}

	_, err := io.WriteString(w, out)
	return err
}

func (t *TaskList) writeOne(b *strings.Builder, a annotation.Annotation) {
	check := " "
	if a.Done {
		check = "x"
	}

	prio := ""
	if marker := a.PriorityMarker(); marker != "" {
		prio = " (" + marker + ")"
	}

	fmt.Fprintf(b, "- [%s] %s%s: %s (`%s`)\n", check, a.Keyword, prio, a.Body, a.Location())

	if !t.showContext || len(a.Context) == 0 {
		return
	}

	fence := fenceFor(a.Context)
	fmt.Fprintf(b, "  %s%s\n", fence, Language(a.Path))
	for _, line := range a.Context {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "  %s\n", fence)
}

// fenceFor returns a backtick fence longer than any backtick run in lines.
func fenceFor(lines []string) string {
	longest := 0
	for _, line := range lines {
		run := 0
		for _, r := range line {
			if r == '`' {
				run++
				longest = max(longest, run)
			} else {
				run = 0
			}
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

func newMarkdownRenderer(width int) func(string) (string, error) {
	return func(md string) (string, error) {
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		return r.Render(md)
	}
}
