package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/codetodo/internal/codetodo"
	"github.com/colonyops/codetodo/internal/core/annotation"
	"github.com/colonyops/codetodo/internal/core/logging"
	"github.com/colonyops/codetodo/internal/core/report"
	"github.com/colonyops/codetodo/internal/core/styles"
	"github.com/colonyops/codetodo/internal/core/terminal"
	"github.com/colonyops/codetodo/internal/core/validate"
)

// ScanCmd is the default action: scan the working directory and print the
// annotations found.
type ScanCmd struct {
	flags *Flags

	// flags
	allow    []string
	plain    bool
	markdown bool
	json     bool
	context  int
	grammar  string
	sort     string
	allFiles bool
	workers  int
}

// NewScanCmd creates a new scan command
func NewScanCmd(flags *Flags) *ScanCmd {
	return &ScanCmd{flags: flags}
}

// Flags returns the scan flags. They are registered on the root command.
func (cmd *ScanCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "allow",
			Aliases:     []string{"a"},
			Usage:       "only report files matching `PATTERN` (repeatable)",
			Destination: &cmd.allow,
		},
		&cli.BoolFlag{
			Name:        "plain",
			Usage:       "print one line per open annotation",
			Destination: &cmd.plain,
		},
		&cli.BoolFlag{
			Name:        "md",
			Usage:       "print a markdown task list",
			Destination: &cmd.markdown,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "print one JSON object per annotation",
			Destination: &cmd.json,
		},
		&cli.IntFlag{
			Name:        "context",
			Aliases:     []string{"c"},
			Usage:       "show `N` lines after each annotation (bare flag uses context_lines from config)",
			Destination: &cmd.context,
		},
		&cli.StringFlag{
			Name:        "grammar",
			Usage:       "marker grammar (current, legacy, auto)",
			Destination: &cmd.grammar,
		},
		&cli.StringFlag{
			Name:        "sort",
			Usage:       "sort order after keyword severity (priority, path)",
			Destination: &cmd.sort,
		},
		&cli.BoolFlag{
			Name:        "all-files",
			Usage:       "scan files whose type does not look like text",
			Destination: &cmd.allFiles,
		},
		&cli.IntFlag{
			Name:        "workers",
			Usage:       "number of concurrent scan workers (0 uses config or CPU count)",
			Destination: &cmd.workers,
		},
	}
}

// Run executes the scan.
func (cmd *ScanCmd) Run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	format, err := cmd.format()
	if err != nil {
		return err
	}

	opts, err := cmd.scanOptions()
	if err != nil {
		return err
	}
	if opts.ContextLines == ContextFromConfig {
		opts.ContextLines = cfg.ContextLines
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	caps := terminal.Detect()
	styler := styles.New(styles.Options{Interactive: caps.Interactive, Theme: cfg.Theme})

	// no progress bar for machine readable output
	if caps.Progress && format != report.FormatJSON {
		opts.Progress = report.NewTerminalProgress(os.Stderr, caps.Width, styler.Palette())
	}

	svc := codetodo.NewScanService(cfg, osfs.New(root), root, logging.Component("codetodo"))

	// an interrupted scan still reports what it found before failing
	anns, scanErr := svc.Scan(ctx, opts)
	if scanErr != nil && anns == nil {
		return scanErr
	}

	formatter, err := report.New(format, report.Options{
		Styler:         styler,
		ShowContext:    opts.ContextLines > 0,
		RenderMarkdown: cfg.Markdown.Render != nil && *cfg.Markdown.Render,
		Width:          caps.Width,
	})
	if err != nil {
		return err
	}

	if err := formatter.Format(c.Root().Writer, anns); err != nil {
		return err
	}
	return scanErr
}

// format resolves the output format flags. At most one may be set.
func (cmd *ScanCmd) format() (report.Format, error) {
	selected := make([]string, 0, 1)
	for name, set := range map[string]bool{"plain": cmd.plain, "md": cmd.markdown, "json": cmd.json} {
		if set {
			selected = append(selected, name)
		}
	}

	switch len(selected) {
	case 0:
		return report.FormatFancy, nil
	case 1:
		return report.ParseFormat(selected[0])
	default:
		return "", errors.New("--plain, --md and --json are mutually exclusive")
	}
}

// scanOptions validates the scan flags and converts them into service
// options. ContextLines may still hold ContextFromConfig.
func (cmd *ScanCmd) scanOptions() (codetodo.ScanOptions, error) {
	opts := codetodo.ScanOptions{
		Patterns:     cmd.allow,
		ContextLines: cmd.context,
		AllFiles:     cmd.allFiles,
		Workers:      cmd.workers,
	}

	for _, p := range cmd.allow {
		if err := validate.Pattern(p); err != nil {
			return opts, fmt.Errorf("invalid --allow pattern: %w", err)
		}
	}

	if cmd.context < ContextFromConfig {
		return opts, fmt.Errorf("--context must not be negative")
	}

	if err := validate.NonNegative(cmd.workers); err != nil {
		return opts, fmt.Errorf("--workers %w", err)
	}

	if cmd.grammar != "" {
		g, err := annotation.ParseGrammar(cmd.grammar)
		if err != nil {
			return opts, err
		}
		opts.Grammar = g
	}

	if cmd.sort != "" {
		o, err := annotation.ParseSortOrder(cmd.sort)
		if err != nil {
			return opts, err
		}
		opts.Sort = o
	}

	return opts, nil
}
