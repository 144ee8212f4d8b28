package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultKeywords = []Keyword{KeywordTODO, KeywordFIXME}

func TestParser_Current(t *testing.T) {
	p := NewParser(GrammarCurrent, defaultKeywords)

	tests := []struct {
		name   string
		line   string
		want   Annotation
		wantOK bool
	}{
		{
			name:   "simple todo",
			line:   "TODO: fix it",
			want:   Annotation{Keyword: KeywordTODO, Body: "fix it"},
			wantOK: true,
		},
		{
			name:   "comment prefix",
			line:   "# TODO: write tests",
			want:   Annotation{Keyword: KeywordTODO, Body: "write tests"},
			wantOK: true,
		},
		{
			name:   "priority with trailing done flag",
			line:   "FIXME(!!): urgent[x]",
			want:   Annotation{Keyword: KeywordFIXME, Priority: 2, Done: true, Body: "urgent"},
			wantOK: true,
		},
		{
			name:   "priority then bracket flag",
			line:   "// FIXME(!!)[x]: urgent",
			want:   Annotation{Keyword: KeywordFIXME, Priority: 2, Done: true, Body: "urgent"},
			wantOK: true,
		},
		{
			name:   "bracket flag then priority",
			line:   "// FIXME[x](!!): urgent",
			want:   Annotation{Keyword: KeywordFIXME, Priority: 2, Done: true, Body: "urgent"},
			wantOK: true,
		},
		{
			name:   "empty bracket is not done",
			line:   "// TODO[ ](!!!): later",
			want:   Annotation{Keyword: KeywordTODO, Priority: 3, Body: "later"},
			wantOK: true,
		},
		{
			name:   "bracket with other text is not done",
			line:   "// TODO[xx]: later",
			want:   Annotation{Keyword: KeywordTODO, Body: "later"},
			wantOK: true,
		},
		{
			name:   "brace separator with closing brace",
			line:   "/* TODO{ refactor this } */",
			want:   Annotation{Keyword: KeywordTODO, Body: "refactor this } */"},
			wantOK: true,
		},
		{
			name:   "brace separator trailing brace stripped",
			line:   "TODO(!){ refactor this }",
			want:   Annotation{Keyword: KeywordTODO, Priority: 1, Body: "refactor this"},
			wantOK: true,
		},
		{
			name:   "empty body",
			line:   "// TODO:",
			want:   Annotation{Keyword: KeywordTODO},
			wantOK: true,
		},
		{
			name:   "malformed priority group",
			line:   "// TODO(abc): body",
			want:   Annotation{Keyword: KeywordTODO, Body: "body"},
			wantOK: true,
		},
		{
			name:   "mixed priority group counts zero",
			line:   "// TODO(!a!): body",
			want:   Annotation{Keyword: KeywordTODO, Body: "body"},
			wantOK: true,
		},
		{
			name:   "multiple paren groups add up",
			line:   "// TODO(!)(!!): body",
			want:   Annotation{Keyword: KeywordTODO, Priority: 3, Body: "body"},
			wantOK: true,
		},
		{
			name:   "legacy marker still parses under current grammar",
			line:   "# @TODO(!): body",
			want:   Annotation{Keyword: KeywordTODO, Priority: 1, Body: "body"},
			wantOK: true,
		},
		{
			name:   "later keyword when first lacks grammar",
			line:   "the TODO list; FIXME: broken",
			want:   Annotation{Keyword: KeywordFIXME, Body: "broken"},
			wantOK: true,
		},
		{
			name:   "mention without separator",
			line:   "just a TODO mention, no colon",
			wantOK: false,
		},
		{
			name:   "keyword as part of a word",
			line:   "MYTODO: nope",
			wantOK: false,
		},
		{
			name:   "case sensitive",
			line:   "todo: nope",
			wantOK: false,
		},
		{
			name:   "space between keyword and group",
			line:   "TODO (!!): nope",
			wantOK: false,
		},
		{
			name:   "unknown keyword",
			line:   "XXX: nope",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParser_Legacy(t *testing.T) {
	p := NewParser(GrammarLegacy, defaultKeywords)

	tests := []struct {
		name   string
		line   string
		want   Annotation
		wantOK bool
	}{
		{
			name:   "plain marker",
			line:   "# @TODO: write tests",
			want:   Annotation{Keyword: KeywordTODO, Body: "write tests"},
			wantOK: true,
		},
		{
			name:   "priority and done",
			line:   "# @TODO: Fix it! DONE",
			want:   Annotation{Keyword: KeywordTODO, Done: true, Body: "Fix it!"},
			wantOK: true,
		},
		{
			name:   "parenthesised priority",
			line:   "// @FIXME(!!!): race",
			want:   Annotation{Keyword: KeywordFIXME, Priority: 3, Body: "race"},
			wantOK: true,
		},
		{
			name:   "done is case sensitive",
			line:   "// @TODO: done soon",
			want:   Annotation{Keyword: KeywordTODO, Body: "done soon"},
			wantOK: true,
		},
		{
			name:   "missing at sign",
			line:   "// TODO: nope",
			wantOK: false,
		},
		{
			name:   "unconfigured keyword",
			line:   "// @NOTE: nope",
			wantOK: false,
		},
		{
			name:   "no colon",
			line:   "// @TODO nope",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParser_AutoFallsBackToLegacy(t *testing.T) {
	p := NewParser(GrammarAuto, defaultKeywords)

	got, ok := p.Parse("x = 1 # @TODO (!!): spaced out DONE")
	require.True(t, ok)
	assert.Equal(t, Annotation{Keyword: KeywordTODO, Priority: 2, Done: true, Body: "spaced out"}, got)

	got, ok = p.Parse("FIXME[x]: current wins")
	require.True(t, ok)
	assert.Equal(t, Annotation{Keyword: KeywordFIXME, Done: true, Body: "current wins"}, got)

	got, ok = p.Parse("# @TODO: Fix it! DONE")
	require.True(t, ok)
	assert.Equal(t, Annotation{Keyword: KeywordTODO, Done: true, Body: "Fix it!"}, got)

	got, ok = p.Parse("// @FIXME[x]: only the current grammar reads this")
	require.True(t, ok)
	assert.Equal(t, Annotation{Keyword: KeywordFIXME, Done: true, Body: "only the current grammar reads this"}, got)
}

func TestParser_AtMarkedLineByGrammar(t *testing.T) {
	line := "# @TODO: Fix it! DONE"

	tests := []struct {
		grammar Grammar
		want    Annotation
	}{
		{grammar: GrammarCurrent, want: Annotation{Keyword: KeywordTODO, Body: "Fix it! DONE"}},
		{grammar: GrammarLegacy, want: Annotation{Keyword: KeywordTODO, Done: true, Body: "Fix it!"}},
		{grammar: GrammarAuto, want: Annotation{Keyword: KeywordTODO, Done: true, Body: "Fix it!"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.grammar), func(t *testing.T) {
			got, ok := NewParser(tt.grammar, defaultKeywords).Parse(line)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParser_PriorityIndependentOfGroupOrder(t *testing.T) {
	p := NewParser(GrammarCurrent, defaultKeywords)

	for n := 0; n <= 5; n++ {
		bangs := ""
		for range n {
			bangs += "!"
		}

		a, ok := p.Parse("TODO(" + bangs + ")[x]: body")
		require.True(t, ok)
		b, ok := p.Parse("TODO[x](" + bangs + "): body")
		require.True(t, ok)

		assert.Equal(t, n, a.Priority)
		assert.Equal(t, a, b)
	}
}

func TestParser_Candidate(t *testing.T) {
	current := NewParser(GrammarCurrent, defaultKeywords)
	assert.True(t, current.Candidate("x TODO y"))
	assert.True(t, current.Candidate("FIXME"))
	assert.False(t, current.Candidate("nothing here"))

	legacy := NewParser(GrammarLegacy, defaultKeywords)
	assert.True(t, legacy.Candidate("# @TODO: x"))
	assert.False(t, legacy.Candidate("# TODO: x"))
}

func TestParser_CustomKeywords(t *testing.T) {
	p := NewParser(GrammarCurrent, []Keyword{"HACK", "HACKY"})

	got, ok := p.Parse("// HACKY(!): works")
	require.True(t, ok)
	assert.Equal(t, Keyword("HACKY"), got.Keyword)
	assert.Equal(t, 1, got.Priority)

	_, ok = p.Parse("// TODO: not configured")
	assert.False(t, ok)
}

func TestParseGrammar(t *testing.T) {
	g, err := ParseGrammar(" Legacy ")
	require.NoError(t, err)
	assert.Equal(t, GrammarLegacy, g)

	_, err = ParseGrammar("modern")
	assert.Error(t, err)
}
