package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/colonyops/codetodo/internal/core/scan"
	"github.com/colonyops/codetodo/internal/core/styles"
)

const maxBarWidth = 40

var _ scan.Progress = (*TerminalProgress)(nil)

// TerminalProgress draws a single-line progress bar, redrawn in place.
type TerminalProgress struct {
	w   io.Writer
	bar progress.Model
}

// NewTerminalProgress creates a progress display writing to w, sized for a
// terminal of the given width and filled with the palette's primary color.
func NewTerminalProgress(w io.Writer, width int, palette styles.Palette) *TerminalProgress {
	barWidth := min(maxBarWidth, width/2)
	if barWidth < 10 {
		barWidth = 10
	}

	return &TerminalProgress{
		w: w,
		bar: progress.New(
			progress.WithSolidFill(string(palette.Primary)),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
	}
}

// Update redraws the bar for done out of total files.
func (p *TerminalProgress) Update(done, total int) {
	ratio := 0.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	_, _ = fmt.Fprintf(p.w, "\r%s %d/%d", p.bar.ViewAs(ratio), done, total)
}

// Done erases the bar.
func (p *TerminalProgress) Done() {
	_, _ = io.WriteString(p.w, "\r\x1b[2K")
}
