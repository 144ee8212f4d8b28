package annotation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Grammar selects which marker syntax the parser accepts.
type Grammar string

const (
	// GrammarCurrent matches `KEYWORD(!!)[x]: body` style markers.
	GrammarCurrent Grammar = "current"
	// GrammarLegacy matches `@KEYWORD(!!): body DONE` style markers.
	GrammarLegacy Grammar = "legacy"
	// GrammarAuto tries the current grammar first and falls back to legacy.
	// Markers written as @KEYWORD are tried as legacy first.
	GrammarAuto Grammar = "auto"
)

// Grammars lists the accepted grammar names.
func Grammars() []Grammar {
	return []Grammar{GrammarCurrent, GrammarLegacy, GrammarAuto}
}

// ParseGrammar converts a name into a Grammar.
func ParseGrammar(s string) (Grammar, error) {
	g := Grammar(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Grammars(), g) {
		return g, nil
	}
	return "", fmt.Errorf("unknown grammar %q (expected current, legacy or auto)", s)
}

const (
	doneFlag   = "x"
	doneSuffix = "[x]"
	legacyDone = "DONE"
)

// legacyMarker is the shortest `@...:` span on a line.
var legacyMarker = regexp.MustCompile(`@(.*?):`)

// Parser extracts annotations from single lines of text. A Parser is safe for
// concurrent use.
type Parser struct {
	grammar  Grammar
	keywords map[Keyword]struct{}
	tokens   []string
	current  *regexp.Regexp
}

// NewParser returns a parser for the given grammar that only emits the given
// keywords.
func NewParser(grammar Grammar, keywords []Keyword) *Parser {
	p := &Parser{
		grammar:  grammar,
		keywords: make(map[Keyword]struct{}, len(keywords)),
	}

	// longest first so FIXMELATER is not shadowed by FIXME
	sorted := slices.Clone(keywords)
	slices.SortFunc(sorted, func(a, b Keyword) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(string(a), string(b))
	})

	alts := make([]string, 0, len(sorted))
	for _, kw := range sorted {
		p.keywords[kw] = struct{}{}
		alts = append(alts, regexp.QuoteMeta(string(kw)))

		switch grammar {
		case GrammarLegacy:
			p.tokens = append(p.tokens, "@"+string(kw))
		default:
			p.tokens = append(p.tokens, string(kw))
		}
	}

	if len(alts) > 0 {
		p.current = regexp.MustCompile(
			`(?:^|[^A-Za-z0-9_])(` + strings.Join(alts, "|") + `)((?:\([^()]*\)|\[[^\[\]]*\])*)\s*([:{])(.*)$`,
		)
	}

	return p
}

// Candidate reports whether the line contains any keyword token at all. It is
// a cheap check done before Parse.
func (p *Parser) Candidate(line string) bool {
	for _, tok := range p.tokens {
		if strings.Contains(line, tok) {
			return true
		}
	}
	return false
}

// Parse extracts an annotation from line. The returned annotation carries only
// keyword, priority, done flag and body; location fields are set by the
// caller. The boolean is false when the line holds no valid marker.
func (p *Parser) Parse(line string) (Annotation, bool) {
	switch p.grammar {
	case GrammarLegacy:
		return p.parseLegacy(line)
	case GrammarAuto:
		a, ok, atMarked := p.parseCurrent(line)
		if ok && !atMarked {
			return a, true
		}
		// an @KEYWORD marker is legacy syntax first; the current reading
		// only stands when the legacy one fails
		if legacy, lok := p.parseLegacy(line); lok {
			return legacy, true
		}
		return a, ok
	default:
		a, ok, _ := p.parseCurrent(line)
		return a, ok
	}
}

// parseCurrent matches the current grammar. atMarked reports whether the
// keyword is directly preceded by '@'.
func (p *Parser) parseCurrent(line string) (a Annotation, ok, atMarked bool) {
	if p.current == nil {
		return Annotation{}, false, false
	}

	loc := p.current.FindStringSubmatchIndex(line)
	if loc == nil {
		return Annotation{}, false, false
	}

	group := func(n int) string { return line[loc[2*n]:loc[2*n+1]] }
	keyword, groups, sep, body := Keyword(group(1)), group(2), group(3), group(4)
	atMarked = loc[2] > 0 && line[loc[2]-1] == '@'

	a = Annotation{Keyword: keyword}
	for _, g := range splitGroups(groups) {
		inner := g[1 : len(g)-1]
		switch g[0] {
		case '(':
			a.Priority += bangCount(inner)
		case '[':
			if strings.TrimSpace(inner) == doneFlag {
				a.Done = true
			}
		}
	}

	body = strings.TrimSpace(body)
	if sep == "{" {
		body = strings.TrimSpace(strings.TrimSuffix(body, "}"))
	}
	if strings.HasSuffix(body, doneSuffix) {
		a.Done = true
		body = strings.TrimSpace(strings.TrimSuffix(body, doneSuffix))
	}
	a.Body = body

	return a, true, atMarked
}

func (p *Parser) parseLegacy(line string) (Annotation, bool) {
	loc := legacyMarker.FindStringSubmatchIndex(line)
	if loc == nil {
		return Annotation{}, false
	}

	tag := line[loc[2]:loc[3]]
	tag = strings.NewReplacer("(", "", ")", "").Replace(tag)
	priority := strings.Count(tag, "!")
	keyword := Keyword(strings.TrimSpace(strings.ReplaceAll(tag, "!", "")))

	if _, ok := p.keywords[keyword]; !ok {
		return Annotation{}, false
	}

	body := line[loc[1]:]
	done := strings.Contains(body, legacyDone)
	body = strings.TrimSpace(strings.ReplaceAll(body, legacyDone, ""))

	return Annotation{
		Keyword:  keyword,
		Priority: priority,
		Done:     done,
		Body:     body,
	}, true
}

// splitGroups breaks a run such as "(!!)[x]" into its delimited groups. The
// input is already known to be well formed.
func splitGroups(s string) []string {
	var groups []string
	for len(s) > 0 {
		closer := byte(')')
		if s[0] == '[' {
			closer = ']'
		}
		end := strings.IndexByte(s, closer)
		if end < 0 {
			break
		}
		groups = append(groups, s[:end+1])
		s = s[end+1:]
	}
	return groups
}

// bangCount returns the number of '!' in a priority group, or zero when the
// group holds anything else.
func bangCount(inner string) int {
	inner = strings.TrimSpace(inner)
	if inner == "" || strings.Trim(inner, "!") != "" {
		return 0
	}
	return len(inner)
}
