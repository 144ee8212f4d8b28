// Package scan reads files and extracts annotations from them, one file per
// unit of work, spread across a worker pool.
package scan

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/colonyops/codetodo/internal/core/annotation"
)

// Request is a single unit of scan work.
type Request struct {
	Path         string
	ContextLines int
}

// ReadError is returned when a file cannot be read or is not valid text.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// errNotText marks content that is not valid UTF-8.
var errNotText = errors.New("content is not valid UTF-8 text")

// Scanner extracts annotations from files on a filesystem rooted at the scan
// root. Paths passed to Scan are relative to that root.
type Scanner struct {
	fs     billy.Filesystem
	parser *annotation.Parser
}

// NewScanner creates a scanner reading from fsys.
func NewScanner(fsys billy.Filesystem, parser *annotation.Parser) *Scanner {
	return &Scanner{fs: fsys, parser: parser}
}

// Scan returns every annotation found in the requested file, in line order.
func (s *Scanner) Scan(req Request) ([]annotation.Annotation, error) {
	data, err := util.ReadFile(s.fs, req.Path)
	if err != nil {
		return nil, &ReadError{Path: req.Path, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &ReadError{Path: req.Path, Err: errNotText}
	}

	lines := splitLines(string(data))
	path := filepath.ToSlash(req.Path)

	var found []annotation.Annotation
	for i, line := range lines {
		if !s.parser.Candidate(line) {
			continue
		}

		a, ok := s.parser.Parse(line)
		if !ok {
			continue
		}

		a.Path = path
		a.Line = i + 1
		a.Context = contextAfter(lines, i, req.ContextLines)
		found = append(found, a)
	}

	return found, nil
}

// splitLines splits content on newlines, dropping the empty element produced
// by a trailing newline and any carriage returns.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// contextAfter copies up to n lines following index i. It returns nil when
// there is nothing to copy.
func contextAfter(lines []string, i, n int) []string {
	if n <= 0 {
		return nil
	}

	start := i + 1
	end := min(start+n, len(lines))
	if start >= end {
		return nil
	}

	out := make([]string, end-start)
	copy(out, lines[start:end])
	return out
}
