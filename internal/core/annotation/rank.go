package annotation

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/colonyops/codetodo/pkg/globs"
)

// SortOrder selects whether priority or file path is compared first after
// the completion state and the keyword severity.
type SortOrder string

const (
	// OrderPriority compares priority before file path.
	OrderPriority SortOrder = "priority"
	// OrderPath compares file path before priority.
	OrderPath SortOrder = "path"
)

// ParseSortOrder converts a name into a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case OrderPriority, OrderPath:
		return o, nil
	}
	return "", fmt.Errorf("unknown sort order %q (expected priority or path)", s)
}

// DefaultSeverity is the keyword severity used when none is configured.
func DefaultSeverity() map[Keyword]int {
	return map[Keyword]int{
		KeywordFIXME: 50,
		KeywordTODO:  10,
	}
}

// RankingKeyError is returned when an annotation carries a keyword that has no
// configured severity. It signals an inconsistency between parser and ranker
// configuration and should abort the run.
type RankingKeyError struct {
	Keyword Keyword
}

func (e *RankingKeyError) Error() string {
	return fmt.Sprintf("no severity configured for keyword %q", e.Keyword)
}

// Ranker orders annotations most important first.
type Ranker struct {
	Severity map[Keyword]int
	Order    SortOrder
}

// Rank returns a sorted copy of anns. The input slice is left untouched.
func (r Ranker) Rank(anns []Annotation) ([]Annotation, error) {
	for _, a := range anns {
		if _, ok := r.Severity[a.Keyword]; !ok {
			return nil, &RankingKeyError{Keyword: a.Keyword}
		}
	}

	out := slices.Clone(anns)
	slices.SortStableFunc(out, r.Compare)
	return out, nil
}

// Compare returns a negative number when a ranks before b, a positive number
// when b ranks before a and zero when both have the same key. Keywords missing
// from the severity map compare as severity zero; Rank rejects them upfront.
func (r Ranker) Compare(a, b Annotation) int {
	if a.Done != b.Done {
		if !a.Done {
			return -1
		}
		return 1
	}

	if c := cmp.Compare(r.Severity[b.Keyword], r.Severity[a.Keyword]); c != 0 {
		return c
	}

	byPriority := cmp.Compare(b.Priority, a.Priority)
	byPath := strings.Compare(a.Path, b.Path)

	first, second := byPriority, byPath
	if r.Order == OrderPath {
		first, second = byPath, byPriority
	}

	return cmp.Or(
		first,
		second,
		cmp.Compare(a.Line, b.Line),
		strings.Compare(string(a.Keyword), string(b.Keyword)),
		strings.Compare(a.Body, b.Body),
	)
}

// FilterPaths keeps the annotations whose path matches at least one pattern.
// An empty pattern list keeps everything.
func FilterPaths(anns []Annotation, patterns []string) []Annotation {
	if len(patterns) == 0 {
		return anns
	}

	out := make([]Annotation, 0, len(anns))
	for _, a := range anns {
		if globs.MatchAny(patterns, a.Path) {
			out = append(out, a)
		}
	}
	return out
}
