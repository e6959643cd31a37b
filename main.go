package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/roster/internal/commands"
	"github.com/hay-kot/roster/internal/core/config"
	"github.com/hay-kot/roster/internal/core/styles"
	"github.com/hay-kot/roster/internal/data/gateway"
	"github.com/hay-kot/roster/internal/roster"
	"github.com/hay-kot/roster/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "roster",
		Usage:     "Browse employees, their posts and comments",
		UsageText: "roster [global options] command [command options]",
		Description: `Roster loads employees from a JSON collection API, shows the posts of the
selected employee and lets you expand each post's comments.

Run 'roster' with no arguments to open the interactive viewer.
Run 'roster render' to print an employee's posts.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("ROSTER_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (the TUI defaults to the state directory)",
				Sources:     cli.EnvVars("ROSTER_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("ROSTER_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "base-url",
				Usage:       "collection API base URL (overrides api.base_url)",
				Sources:     cli.EnvVars("ROSTER_BASE_URL"),
				Destination: &flags.BaseURL,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// The TUI owns the terminal, so it always logs to a file.
			logFile := flags.LogFile
			if logFile == "" && !hasSubcommand(c) {
				logFile = commands.DefaultLogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.BaseURL != "" {
				cfg.API.BaseURL = flags.BaseURL
				if err := cfg.Validate(); err != nil {
					return ctx, fmt.Errorf("base-url: %w", err)
				}
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			if palette, ok := styles.GetPalette(cfg.TUI.Theme); ok {
				styles.SetTheme(palette)
			}

			gw := gateway.New(gateway.Config{
				BaseURL:           cfg.API.BaseURL,
				Timeout:           cfg.API.Timeout,
				RequestsPerSecond: cfg.API.RequestsPerSecond,
				Burst:             cfg.API.Burst,
				UserAgent:         cfg.API.UserAgent,
			}, logger)

			flags.App = roster.New(gw, logger)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = tuiCmd.Register(app)
	app = commands.NewRenderCmd(flags).Register(app)
	app = commands.NewEmployeesCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'roster --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

// hasSubcommand reports whether the invocation names a subcommand other
// than tui.
func hasSubcommand(c *cli.Command) bool {
	if c.Args().Len() == 0 {
		return false
	}
	first := c.Args().First()
	return first != "tui" && c.Command(first) != nil
}
