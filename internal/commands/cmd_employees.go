package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/roster/internal/core/feed"
	"github.com/hay-kot/roster/pkg/iojson"
)

type EmployeesCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	ndjson     bool
}

// NewEmployeesCmd creates a new employees command
func NewEmployeesCmd(flags *Flags) *EmployeesCmd {
	return &EmployeesCmd{
		flags: flags,
	}
}

// Register adds the employees command to the application
func (cmd *EmployeesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "employees",
		Aliases: []string{"ls"},
		Usage:   "List employees",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as a JSON array",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "ndjson",
				Usage:       "output one JSON object per line",
				Destination: &cmd.ndjson,
			},
		},
		Action: cmd.run,
	})

	return app
}

// employeeInfo is the JSON output format for roster employees --json.
type employeeInfo struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Company  string `json:"company"`
}

func newEmployeeInfo(e feed.Employee) employeeInfo {
	return employeeInfo{
		ID:       e.ID,
		Name:     e.Name,
		Username: e.Username,
		Email:    e.Email,
		Company:  e.Company.Name,
	}
}

func (cmd *EmployeesCmd) run(ctx context.Context, c *cli.Command) error {
	employees, err := cmd.flags.App.Gateway.ListEmployees(ctx)
	if err != nil {
		return fmt.Errorf("list employees: %w", err)
	}

	out := c.Root().Writer

	switch {
	case cmd.ndjson:
		for _, e := range employees {
			if err := iojson.WriteLine(out, newEmployeeInfo(e)); err != nil {
				return fmt.Errorf("encode employee: %w", err)
			}
		}
		return nil
	case cmd.jsonOutput:
		infos := make([]employeeInfo, 0, len(employees))
		for _, e := range employees {
			infos = append(infos, newEmployeeInfo(e))
		}
		return iojson.WriteWith(out, c.Root().ErrWriter, infos)
	}

	if len(employees) == 0 {
		fmt.Fprintf(os.Stderr, "No employees found\n")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCOMPANY")

	for _, e := range employees {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.Name, e.Email, e.Company.Name)
	}

	return w.Flush()
}
