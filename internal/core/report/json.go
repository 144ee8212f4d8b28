package report

import (
	"io"

	"github.com/colonyops/codetodo/internal/core/annotation"
	"github.com/colonyops/codetodo/pkg/iojson"
)

// JSON writes one JSON object per annotation per line.
type JSON struct{}

func (j *JSON) Format(w io.Writer, anns []annotation.Annotation) error {
	return iojson.WriteLines(w, anns)
}
