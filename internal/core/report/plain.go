package report

import (
	"fmt"
	"io"

	"github.com/colonyops/codetodo/internal/core/annotation"
)

// Plain writes one line per open annotation: `KEYWORD body : path:line`.
// Completed annotations and context are omitted.
type Plain struct{}

func (p *Plain) Format(w io.Writer, anns []annotation.Annotation) error {
	for _, a := range anns {
		if a.Done {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s %s : %s\n", a.Keyword, a.Body, a.Location()); err != nil {
			return err
		}
	}
	return nil
}
