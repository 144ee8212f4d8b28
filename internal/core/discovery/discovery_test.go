package discovery

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/codetodo/internal/core/pool"
	"github.com/colonyops/codetodo/pkg/globs"
)

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := []string{
		"a.py",
		"b.py",
		"README.md",
		"logo.png",
		".main.go.swp",
		"src/main.go",
		"src/util/strings.go",
		"src/util/.strings.go.swp",
		"build/pycache",
		"build/out.txt",
		".git/config",
		".git/HEAD",
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("// TODO: x\n"), 0o644))
	}
	return root
}

func newTestDiscoverer(root string, textOnly bool) *Discoverer {
	return New(osfs.New(root), pool.New(2), Options{
		Blacklist:  DefaultBlacklist,
		IgnoreDirs: DefaultIgnoreDirs,
		TextOnly:   textOnly,
		Logger:     zerolog.Nop(),
	})
}

func TestDiscover_Walk(t *testing.T) {
	root := setupTree(t)

	got, err := newTestDiscoverer(root, false).Discover(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"README.md",
		"a.py",
		"b.py",
		"build/out.txt",
		"logo.png",
		"src/main.go",
		"src/util/strings.go",
	}, got)
}

func TestDiscover_TextOnly(t *testing.T) {
	root := setupTree(t)

	got, err := newTestDiscoverer(root, true).Discover(context.Background(), nil)
	require.NoError(t, err)

	assert.NotContains(t, got, "logo.png")
	assert.Contains(t, got, "a.py")
	assert.Contains(t, got, "src/main.go")
	assert.Contains(t, got, "build/out.txt")
}

func TestDiscover_Patterns(t *testing.T) {
	root := setupTree(t)
	d := newTestDiscoverer(root, false)

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "basename pattern is recursive",
			patterns: []string{"*.go"},
			want:     []string{"src/main.go", "src/util/strings.go"},
		},
		{
			name:     "union without duplicates",
			patterns: []string{"*.py", "a.*", "src/*.go"},
			want:     []string{"a.py", "b.py", "src/main.go"},
		},
		{
			name:     "doublestar pattern",
			patterns: []string{"src/**/*.go"},
			want:     []string{"src/main.go", "src/util/strings.go"},
		},
		{
			name:     "no match is empty",
			patterns: []string{"*.rs"},
			want:     nil,
		},
		{
			name:     "blacklist wins over pattern",
			patterns: []string{"*.swp", "*cache"},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Discover(context.Background(), tt.patterns)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscover_NeverReturnsBlacklisted(t *testing.T) {
	root := setupTree(t)
	d := newTestDiscoverer(root, false)

	for _, patterns := range [][]string{nil, {"**"}, {"*"}} {
		got, err := d.Discover(context.Background(), patterns)
		require.NoError(t, err)
		for _, f := range got {
			assert.False(t, globs.MatchAny(DefaultBlacklist, filepath.Base(f)), "blacklisted path %s returned", f)
		}
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	root := setupTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestDiscoverer(root, false).Discover(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBlacklisted(t *testing.T) {
	assert.True(t, Blacklisted(DefaultBlacklist, "dir/file.swp"))
	assert.True(t, Blacklisted(DefaultBlacklist, "__pycache"))
	assert.False(t, Blacklisted(DefaultBlacklist, "cache/file.go"))
	assert.False(t, Blacklisted(nil, "file.swp"))
}

func TestGuessMIME(t *testing.T) {
	assert.Equal(t, "text", category(GuessMIME("main.py")))
	assert.Equal(t, "text", category(GuessMIME("notes.txt")))
	assert.Equal(t, "image", category(GuessMIME("logo.png")))
	assert.Empty(t, GuessMIME("blob.unknownext"))

	assert.True(t, IsText("src/main.go"))
	assert.False(t, IsText("logo.png"))
	assert.False(t, IsText("blob.unknownext"))
}

func category(mimeType string) string {
	c, _, _ := strings.Cut(mimeType, "/")
	return c
}
