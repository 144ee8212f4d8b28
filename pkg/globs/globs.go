// Package globs matches shell-style glob patterns against slash-separated
// relative paths. Patterns support `**` to cross directory boundaries.
package globs

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match reports whether name matches pattern. A pattern without a slash is
// tried against the basename as well as the full path, so "*.go" selects Go
// files at any depth. A pattern containing a slash is anchored at the root.
// Malformed patterns never match.
func Match(pattern, name string) bool {
	name = strings.TrimPrefix(name, "./")

	if ok, _ := doublestar.Match(pattern, name); ok {
		return true
	}

	if strings.Contains(pattern, "/") {
		return false
	}

	ok, _ := doublestar.Match(pattern, path.Base(name))
	return ok
}

// MatchAny reports whether name matches at least one of patterns.
func MatchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if Match(p, name) {
			return true
		}
	}
	return false
}

// Validate returns an error when pattern is not a valid glob.
func Validate(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("empty pattern")
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid pattern %q", pattern)
	}
	return nil
}
