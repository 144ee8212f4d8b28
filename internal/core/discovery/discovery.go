// Package discovery enumerates the files a scan should look at, either by a
// full walk of the scan root or by resolving glob patterns under it.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"

	"github.com/colonyops/codetodo/internal/core/pool"
	"github.com/colonyops/codetodo/pkg/globs"
)

// DefaultBlacklist holds the basename patterns excluded from every scan.
var DefaultBlacklist = []string{"*.swp", "*cache"}

// DefaultIgnoreDirs holds the directory names never descended into.
var DefaultIgnoreDirs = []string{".git"}

// Options configures a Discoverer.
type Options struct {
	// Blacklist holds basename glob patterns to drop.
	Blacklist []string
	// IgnoreDirs holds directory basename glob patterns that are not walked.
	IgnoreDirs []string
	// TextOnly drops files whose guessed MIME type is not text/*.
	TextOnly bool
	Logger   zerolog.Logger
}

// Discoverer lists candidate files under the root of a filesystem.
type Discoverer struct {
	fs   billy.Filesystem
	pool *pool.Pool
	opts Options
}

// New creates a Discoverer over fsys. Pattern resolution runs on p.
func New(fsys billy.Filesystem, p *pool.Pool, opts Options) *Discoverer {
	return &Discoverer{fs: fsys, pool: p, opts: opts}
}

// Discover returns the distinct, sorted, slash-separated paths of the files to
// scan. Without patterns every regular file under the root is returned;
// otherwise each pattern is resolved on the pool and the results are merged.
// A pattern that matches nothing is not an error.
func (d *Discoverer) Discover(ctx context.Context, patterns []string) ([]string, error) {
	var (
		files []string
		err   error
	)

	if len(patterns) == 0 {
		files, err = d.walk(ctx, nil)
	} else {
		files, err = d.resolvePatterns(ctx, patterns)
	}
	if err != nil {
		return nil, err
	}

	files = d.filter(files)

	d.opts.Logger.Debug().
		Ctx(ctx).
		Int("patterns", len(patterns)).
		Int("files", len(files)).
		Msg("discovery finished")

	return files, nil
}

func (d *Discoverer) resolvePatterns(ctx context.Context, patterns []string) ([]string, error) {
	type result struct {
		files []string
		err   error
	}

	results, err := pool.Map(ctx, d.pool, patterns, func(ctx context.Context, pattern string) result {
		files, err := d.walk(ctx, func(rel string) bool { return globs.Match(pattern, rel) })
		if err != nil {
			return result{err: fmt.Errorf("resolve %q: %w", pattern, err)}
		}
		return result{files: files}
	})
	if err != nil {
		return nil, err
	}

	var all []string
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		all = append(all, r.files...)
	}
	return all, nil
}

// walk visits every regular file below the root and keeps those accepted by
// keep. A nil keep accepts everything.
func (d *Discoverer) walk(ctx context.Context, keep func(rel string) bool) ([]string, error) {
	var files []string

	err := util.Walk(d.fs, ".", func(p string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if p == "." {
				return err
			}
			d.opts.Logger.Debug().Ctx(ctx).Err(err).Str("path", p).Msg("skipping unreadable path")
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel := filepath.ToSlash(p)

		if info.IsDir() {
			if rel != "." && d.ignoredDir(path.Base(rel)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		if keep == nil || keep(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipDir) {
		return nil, fmt.Errorf("walk: %w", err)
	}

	return files, nil
}

func (d *Discoverer) ignoredDir(name string) bool {
	for _, pattern := range d.opts.IgnoreDirs {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// filter removes duplicates, blacklisted files and, when configured, files
// that do not look like text.
func (d *Discoverer) filter(files []string) []string {
	slices.Sort(files)
	files = slices.Compact(files)

	out := files[:0]
	for _, f := range files {
		if Blacklisted(d.opts.Blacklist, f) {
			continue
		}
		if d.opts.TextOnly && !IsText(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Blacklisted reports whether the basename of name matches any of patterns.
func Blacklisted(patterns []string, name string) bool {
	base := path.Base(strings.TrimSuffix(filepath.ToSlash(name), "/"))
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
