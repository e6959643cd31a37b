package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/roster/internal/core/notify"
	"github.com/hay-kot/roster/internal/tui"
	tuinotify "github.com/hay-kot/roster/internal/tui/notify"
)

// notificationHistory bounds the in-memory toast history.
const notificationHistory = 100

type TuiCmd struct {
	flags    *Flags
	employee int
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{
		flags: flags,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "employee",
			Aliases:     []string{"e"},
			Usage:       "employee id selected on start (defaults to tui.default_employee)",
			Sources:     cli.EnvVars("ROSTER_EMPLOYEE"),
			Local:       true,
			Destination: &cmd.employee,
		},
	}
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "tui",
		Usage:  "Browse employee posts interactively",
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	employee := cmd.employee
	if employee == 0 && cmd.flags.Config != nil {
		employee = cmd.flags.Config.TUI.DefaultEmployee
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := tui.New(ctx, cmd.flags.App, tui.Options{
		DefaultEmployee: employee,
		Bus:             tuinotify.NewBus(notify.NewMemoryStore(notificationHistory)),
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
