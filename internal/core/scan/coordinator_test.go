package scan

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/codetodo/internal/core/pool"
)

type recordingProgress struct {
	mu      sync.Mutex
	updates [][2]int
	done    int
}

func (p *recordingProgress) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, [2]int{done, total})
}

func (p *recordingProgress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
}

func TestCoordinator_Run(t *testing.T) {
	root := t.TempDir()
	var files []string
	for i := range 12 {
		name := fmt.Sprintf("pkg%d/file.go", i)
		writeFile(t, root, name, fmt.Sprintf("package x\n// TODO: item %d\n", i))
		files = append(files, name)
	}
	files = append(files, "does/not/exist.go")

	progress := &recordingProgress{}
	c := NewCoordinator(newTestScanner(root), pool.New(4), CoordinatorOptions{
		Progress: progress,
		Interval: time.Millisecond,
		Logger:   zerolog.Nop(),
	})

	got, err := c.Run(context.Background(), files, 0)
	require.NoError(t, err)
	require.Len(t, got, 12)

	var bodies []string
	for _, a := range got {
		assert.Equal(t, 2, a.Line)
		bodies = append(bodies, a.Body)
	}
	sort.Strings(bodies)
	assert.Contains(t, bodies, "item 0")
	assert.Contains(t, bodies, "item 11")

	require.NotEmpty(t, progress.updates)
	assert.Equal(t, [2]int{len(files), len(files)}, progress.updates[len(progress.updates)-1])
	assert.Equal(t, 1, progress.done)
}

func TestCoordinator_Run_NoFiles(t *testing.T) {
	c := NewCoordinator(newTestScanner(t.TempDir()), pool.New(2), CoordinatorOptions{})

	got, err := c.Run(context.Background(), nil, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCoordinator_Run_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "// TODO: a\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCoordinator(newTestScanner(root), pool.New(1), CoordinatorOptions{Logger: zerolog.Nop()})
	got, err := c.Run(ctx, []string{"a.go", "a.go", "a.go"}, 0)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, got)
}
