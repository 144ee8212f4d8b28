// Package annotation defines the TODO/FIXME annotation model together with the
// line parser and the ranking rules used to order a report.
package annotation

import (
	"fmt"
	"strings"
)

// Keyword is the tag of an annotation, e.g. TODO or FIXME.
type Keyword string

const (
	KeywordTODO  Keyword = "TODO"
	KeywordFIXME Keyword = "FIXME"
)

// Annotation is a single parsed occurrence of a keyword marker. Values are
// created by the parser and the scanner and are treated as read-only after.
type Annotation struct {
	Keyword  Keyword  `json:"keyword"`
	Priority int      `json:"priority"`
	Done     bool     `json:"done"`
	Body     string   `json:"body"`
	Path     string   `json:"path"`
	Line     int      `json:"line"`
	Context  []string `json:"context,omitempty"`
}

// Location returns "path:line".
func (a Annotation) Location() string {
	return fmt.Sprintf("%s:%d", a.Path, a.Line)
}

// PriorityMarker returns the priority as a run of exclamation marks, or an
// empty string when the priority is zero.
func (a Annotation) PriorityMarker() string {
	if a.Priority <= 0 {
		return ""
	}
	return strings.Repeat("!", a.Priority)
}
