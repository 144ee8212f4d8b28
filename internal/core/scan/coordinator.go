package scan

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/codetodo/internal/core/annotation"
	"github.com/colonyops/codetodo/internal/core/pool"
)

// DefaultInterval is how often progress is reported while a scan runs.
const DefaultInterval = 100 * time.Millisecond

// Progress receives the ratio of completed files while a scan runs. Update is
// only called from the coordinating goroutine.
type Progress interface {
	Update(done, total int)
	Done()
}

type nopProgress struct{}

func (nopProgress) Update(int, int) {}
func (nopProgress) Done()           {}

// CoordinatorOptions configures a Coordinator.
type CoordinatorOptions struct {
	// Progress is notified on every tick. Nil disables progress reporting.
	Progress Progress
	// Interval between progress updates. Zero uses DefaultInterval.
	Interval time.Duration
	Logger   zerolog.Logger
}

// Coordinator spreads file scans across a worker pool and gathers the
// results.
type Coordinator struct {
	scanner  *Scanner
	pool     *pool.Pool
	progress Progress
	interval time.Duration
	log      zerolog.Logger
}

// NewCoordinator creates a coordinator running scanner on p.
func NewCoordinator(scanner *Scanner, p *pool.Pool, opts CoordinatorOptions) *Coordinator {
	c := &Coordinator{
		scanner:  scanner,
		pool:     p,
		progress: opts.Progress,
		interval: opts.Interval,
		log:      opts.Logger,
	}
	if c.progress == nil {
		c.progress = nopProgress{}
	}
	if c.interval <= 0 {
		c.interval = DefaultInterval
	}
	return c
}

// Run scans every file and returns all annotations found. Files that cannot
// be read contribute nothing. If ctx is cancelled, files not yet started are
// skipped and the partial result is returned together with ctx.Err().
func (c *Coordinator) Run(ctx context.Context, files []string, contextLines int) ([]annotation.Annotation, error) {
	total := len(files)
	reqs := make([]Request, total)
	for i, f := range files {
		reqs[i] = Request{Path: f, ContextLines: contextLines}
	}

	var completed atomic.Int64

	type outcome struct {
		results [][]annotation.Annotation
		err     error
	}
	finished := make(chan outcome, 1)

	go func() {
		results, err := pool.Map(ctx, c.pool, reqs, func(ctx context.Context, req Request) []annotation.Annotation {
			defer completed.Add(1)

			found, err := c.scanner.Scan(req)
			if err != nil {
				var readErr *ReadError
				if errors.As(err, &readErr) {
					c.log.Debug().Ctx(ctx).Err(readErr.Err).Str("path", readErr.Path).Msg("skipping unreadable file")
				} else {
					c.log.Warn().Ctx(ctx).Err(err).Str("path", req.Path).Msg("scan failed")
				}
				return nil
			}
			return found
		})
		finished <- outcome{results: results, err: err}
	}()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	var out outcome
wait:
	for {
		select {
		case out = <-finished:
			break wait
		case <-ticker.C:
			c.progress.Update(int(completed.Load()), total)
		}
	}

	c.progress.Update(int(completed.Load()), total)
	c.progress.Done()

	var all []annotation.Annotation
	for _, r := range out.results {
		all = append(all, r...)
	}

	c.log.Debug().
		Ctx(ctx).
		Int("files", total).
		Int64("completed", completed.Load()).
		Int("annotations", len(all)).
		Msg("scan finished")

	return all, out.err
}
