// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"regexp"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/codetodo/pkg/globs"
)

var keywordRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// Keyword validates an annotation keyword: an uppercase letter followed by
// uppercase letters, digits or underscores.
func Keyword(name string) error {
	if !keywordRe.MatchString(name) {
		return fmt.Errorf("keyword %q must be uppercase letters, digits or underscores", name)
	}
	return nil
}

// KeywordField returns a criterio validator for keywords.
func KeywordField(field, name string) error {
	return criterio.Run(field, name, Keyword)
}

// NonNegative rejects values below zero.
func NonNegative(v int) error {
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// Pattern validates a glob pattern.
func Pattern(pattern string) error {
	return globs.Validate(pattern)
}

// PatternsField validates every pattern, reporting each failure as
// field[index].
func PatternsField(field string, patterns []string) error {
	var errs criterio.FieldErrorsBuilder
	for i, p := range patterns {
		if err := Pattern(p); err != nil {
			errs = errs.Append(fmt.Sprintf("%s[%d]", field, i), err)
		}
	}
	return errs.ToError()
}
