package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/codetodo/internal/core/styles"
	"github.com/colonyops/codetodo/internal/core/terminal"
	"github.com/colonyops/codetodo/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "codetodo config validate [options]",
				Description: "Validates the configuration file, checking keywords, glob patterns, and option values.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	issues, err := collectIssues(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath))
	if err != nil {
		return err
	}

	w := c.Root().Writer

	switch cmd.format {
	case "json":
		if err := cmd.outputJSON(w, issues); err != nil {
			return err
		}
	case "text":
		caps := terminal.Detect()
		cmd.outputText(w, styles.New(styles.Options{Interactive: caps.Interactive, Theme: cmd.flags.Config.Theme}), issues)
	default:
		return fmt.Errorf("unknown format %q (expected text or json)", cmd.format)
	}

	if len(issues) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// collectIssues flattens criterio field errors. Any other error is returned
// as is.
func collectIssues(err error) ([]validationIssue, error) {
	if err == nil {
		return nil, nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues, nil
}

func (cmd *ConfigValidateCmd) outputJSON(w io.Writer, issues []validationIssue) error {
	out := struct {
		Valid  bool              `json:"valid"`
		Path   string            `json:"path"`
		Errors []validationIssue `json:"errors,omitempty"`
	}{
		Valid:  len(issues) == 0,
		Path:   cmd.flags.ConfigPath,
		Errors: issues,
	}

	return iojson.WriteWith(w, os.Stderr, out)
}

func (cmd *ConfigValidateCmd) outputText(w io.Writer, s styles.Styler, issues []validationIssue) {
	for _, issue := range issues {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", s.Error(s.PendingIcon()), s.Bold(issue.Field), issue.Message)
	}

	if len(issues) == 0 {
		_, _ = fmt.Fprintf(w, "%s %s\n", s.Success(s.DoneIcon()), "Configuration is valid")
		return
	}

	_, _ = fmt.Fprintln(w, s.Error(fmt.Sprintf("%d error(s) found", len(issues))))
}
