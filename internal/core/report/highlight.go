package report

import (
	"bytes"
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/colonyops/codetodo/internal/core/styles"
)

// highlighter colors context snippets by the language of their file. A
// disabled highlighter returns its input unchanged.
type highlighter struct {
	enabled   bool
	style     *chroma.Style
	formatter chroma.Formatter
}

func newHighlighter(s styles.Styler) *highlighter {
	if !s.Interactive() {
		return &highlighter{}
	}
	return &highlighter{
		enabled:   true,
		style:     chromastyles.Get(s.Palette().Chroma),
		formatter: formatters.Get("terminal256"),
	}
}

// Highlight returns lines colored for the language detected from filename.
// On any lexer or formatter failure the lines are returned as they are.
func (h *highlighter) Highlight(filename string, lines []string) []string {
	if !h.enabled || len(lines) == 0 {
		return lines
	}

	lexer := lexers.Match(path.Base(filename))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return lines
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, it); err != nil {
		return lines
	}

	out := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(out) != len(lines) {
		return lines
	}
	return out
}

// Language returns the markdown fence language for filename, taken from the
// chroma lexer registry with the file extension as fallback.
func Language(filename string) string {
	base := path.Base(filename)

	if lexer := lexers.Match(base); lexer != nil {
		if aliases := lexer.Config().Aliases; len(aliases) > 0 {
			return aliases[0]
		}
	}

	return strings.TrimPrefix(path.Ext(base), ".")
}
