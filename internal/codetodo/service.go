// Package codetodo wires discovery, scanning and ranking into a single scan
// operation used by the command line.
package codetodo

import (
	"context"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"

	"github.com/colonyops/codetodo/internal/core/annotation"
	"github.com/colonyops/codetodo/internal/core/config"
	"github.com/colonyops/codetodo/internal/core/discovery"
	"github.com/colonyops/codetodo/internal/core/logging"
	"github.com/colonyops/codetodo/internal/core/pool"
	"github.com/colonyops/codetodo/internal/core/scan"
)

// ScanOptions holds the per-invocation settings that override or extend the
// configuration.
type ScanOptions struct {
	// Patterns restricts the scan to matching files. Empty scans everything.
	Patterns []string
	// ContextLines is the number of lines captured after each annotation.
	ContextLines int
	// Grammar overrides the configured grammar when set.
	Grammar annotation.Grammar
	// Sort overrides the configured sort order when set.
	Sort annotation.SortOrder
	// AllFiles disables the text-only MIME filter.
	AllFiles bool
	// Workers overrides the configured pool size when positive.
	Workers int
	// Progress receives scan progress. Nil disables it.
	Progress scan.Progress
}

// ScanService finds annotations below a scan root.
type ScanService struct {
	cfg  *config.Config
	fs   billy.Filesystem
	root string
	log  zerolog.Logger
}

// NewScanService creates a service reading from fsys, which must be rooted
// at root.
func NewScanService(cfg *config.Config, fsys billy.Filesystem, root string, log zerolog.Logger) *ScanService {
	return &ScanService{
		cfg:  cfg,
		fs:   fsys,
		root: root,
		log:  log,
	}
}

// Scan discovers files, extracts their annotations and returns them ranked
// and filtered by opts.Patterns. When ctx is cancelled during the scan phase,
// the annotations of the files already scanned are returned ranked together
// with the wrapped context error.
func (s *ScanService) Scan(ctx context.Context, opts ScanOptions) ([]annotation.Annotation, error) {
	ctx = logging.WithScanRoot(ctx, s.root)

	workers := s.cfg.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	p := pool.New(workers)

	grammar := s.cfg.GrammarValue()
	if opts.Grammar != "" {
		grammar = opts.Grammar
	}

	order := s.cfg.SortOrder()
	if opts.Sort != "" {
		order = opts.Sort
	}

	textOnly := s.cfg.TextOnly != nil && *s.cfg.TextOnly && !opts.AllFiles

	s.log.Debug().
		Ctx(ctx).
		Int("workers", p.Size()).
		Str("grammar", string(grammar)).
		Str("sort", string(order)).
		Strs("patterns", opts.Patterns).
		Bool("text_only", textOnly).
		Msg("starting scan")

	disc := discovery.New(s.fs, p, discovery.Options{
		Blacklist:  s.cfg.Blacklist,
		IgnoreDirs: s.cfg.IgnoreDirs,
		TextOnly:   textOnly,
		Logger:     logging.Component("discovery"),
	})

	files, err := disc.Discover(ctx, opts.Patterns)
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}

	scanner := scan.NewScanner(s.fs, annotation.NewParser(grammar, s.cfg.KeywordList()))
	coord := scan.NewCoordinator(scanner, p, scan.CoordinatorOptions{
		Progress: opts.Progress,
		Interval: s.cfg.ProgressInterval,
		Logger:   logging.Component("scan"),
	})

	found, scanErr := coord.Run(ctx, files, opts.ContextLines)

	ranker := annotation.Ranker{Severity: s.cfg.Severity(), Order: order}
	ranked, err := ranker.Rank(found)
	if err != nil {
		return nil, fmt.Errorf("rank annotations: %w", err)
	}
	ranked = annotation.FilterPaths(ranked, opts.Patterns)

	if scanErr != nil {
		return ranked, fmt.Errorf("scan files: %w", scanErr)
	}
	return ranked, nil
}
