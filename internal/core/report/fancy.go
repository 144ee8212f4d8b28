package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/colonyops/codetodo/internal/core/annotation"
	"github.com/colonyops/codetodo/internal/core/styles"
)

const contextIndent = "    "

// Fancy writes a styled block per annotation: status glyph, keyword, priority
// markers and body, followed by the location and optional context.
type Fancy struct {
	styler      styles.Styler
	showContext bool
	highlighter *highlighter
}

func (f *Fancy) Format(w io.Writer, anns []annotation.Annotation) error {
	var b strings.Builder
	for _, a := range anns {
		f.writeOne(&b, a)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (f *Fancy) writeOne(b *strings.Builder, a annotation.Annotation) {
	paint := f.styler.Error
	switch {
	case a.Done:
		paint = f.styler.Success
	case a.Keyword == annotation.KeywordTODO:
		paint = f.styler.Warning
	}

	status := f.styler.PendingIcon()
	if a.Done {
		status = f.styler.DoneIcon()
	}

	prio := ""
	if marker := a.PriorityMarker(); marker != "" {
		prio = " (" + marker + ")"
	}

	b.WriteString(paint(fmt.Sprintf("%s %s%s: %s", status, a.Keyword, prio, a.Body)))
	b.WriteString("\n")
	fmt.Fprintf(b, "%s:%s\n", f.styler.Muted(a.Path), f.styler.Bold(fmt.Sprint(a.Line)))

	if f.showContext && len(a.Context) > 0 {
		for _, line := range f.highlighter.Highlight(a.Path, a.Context) {
			b.WriteString(contextIndent)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
}
