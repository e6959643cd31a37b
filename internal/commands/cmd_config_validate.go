package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/roster/internal/core/config"
	"github.com/hay-kot/roster/internal/core/styles"
	"github.com/hay-kot/roster/pkg/iojson"
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
				UsageText:   "roster config validate [options]",
				Description: "Validates the configuration file, checking the API endpoint, timeouts and theme.",
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
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type validationReport struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationIssue          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	report := cmd.validate()
	out := c.Root().Writer

	if cmd.format == "json" {
		if err := iojson.WriteWith(out, c.Root().ErrWriter, report); err != nil {
			return err
		}
	} else {
		cmd.outputText(out, report)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) validate() validationReport {
	report := validationReport{
		Valid:    true,
		Warnings: cmd.flags.Config.Warnings(),
	}

	err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)
	if err == nil {
		return report
	}

	report.Valid = false
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			report.Errors = append(report.Errors, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
		}
		return report
	}

	report.Errors = append(report.Errors, validationIssue{Message: err.Error()})
	return report
}

func (cmd *ConfigValidateCmd) outputText(w io.Writer, report validationReport) {
	for _, warn := range report.Warnings {
		_, _ = fmt.Fprintln(w, styles.WarningTextStyle.Render(styles.IconWarning+" "+warn.Category+": "+warn.Message))
		if warn.Item != "" {
			_, _ = fmt.Fprintf(w, "  Item: %s\n", warn.Item)
		}
	}

	for _, e := range report.Errors {
		line := e.Message
		if e.Field != "" {
			line = e.Field + ": " + e.Message
		}
		_, _ = fmt.Fprintln(w, styles.ErrorTextStyle.Render(styles.IconError+" "+line))
	}

	_, _ = fmt.Fprintln(w)
	if report.Valid {
		_, _ = fmt.Fprintln(w, styles.IconCheck+" Configuration is valid")
		return
	}
	_, _ = fmt.Fprintln(w, styles.ErrorTextStyle.Render(fmt.Sprintf("%d error(s) found", len(report.Errors))))
}
