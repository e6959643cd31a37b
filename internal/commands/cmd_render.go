package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/roster/internal/core/config"
	"github.com/hay-kot/roster/internal/core/dom"
	"github.com/hay-kot/roster/internal/core/feed"
	"github.com/hay-kot/roster/internal/core/styles"
	"github.com/hay-kot/roster/internal/data/gateway"
	"github.com/hay-kot/roster/internal/roster"
	"github.com/hay-kot/roster/pkg/iojson"
)

// ErrNoEmployees is returned when the selector has nothing to choose from.
var ErrNoEmployees = errors.New("no employees available")

type RenderCmd struct {
	flags *Flags

	employee int
	format   string
	width    int
	expand   bool
	fr       *iojson.FileReader[[]feed.Post]

	// isTTY reports whether interactive prompts and terminal styling apply.
	isTTY func() bool
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{
		flags: flags,
		fr:    &iojson.FileReader[[]feed.Post]{},
		isTTY: func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
	}
}

// Register adds the render command to the application.
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	fileFlag := cmd.fr.Flag()
	fileFlag.Usage = `render posts from a JSON file ("-" reads stdin) instead of fetching an employee's posts`

	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Render an employee's posts to stdout",
		UsageText: "roster render [--employee ID] [--format text|markdown|html] [--expand]",
		Description: `Loads the employee list, selects one employee and prints the rendered
page. Without --employee an interactive picker is shown on a terminal,
otherwise the first employee is used.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "employee",
				Aliases:     []string{"e"},
				Usage:       "employee id to render",
				Destination: &cmd.employee,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, markdown, html); defaults to render.format",
				Destination: &cmd.format,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "word wrap width for markdown output; defaults to render.width",
				Destination: &cmd.width,
			},
			&cli.BoolFlag{
				Name:        "expand",
				Usage:       "show every comment panel",
				Destination: &cmd.expand,
			},
			fileFlag,
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	format, width := cmd.outputSettings()
	if !config.IsValidFormat(format) {
		return fmt.Errorf("unknown format %q", format)
	}

	if cmd.fr.Path() != "" {
		if err := cmd.renderFile(ctx); err != nil {
			return err
		}
	} else {
		picked, err := cmd.selectEmployee(ctx)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		res, err := cmd.flags.App.Select(ctx, picked)
		if err != nil {
			return err
		}
		log.Debug().
			Int("employee", res.UserID).
			Str("refresh_id", res.RefreshID).
			Int("posts", len(res.Posts)).
			Msg("employee rendered")
	}

	if cmd.expand {
		if err := cmd.flags.App.ExpandAll(); err != nil {
			return fmt.Errorf("expand comments: %w", err)
		}
	}

	return cmd.write(c.Root().Writer, format, width)
}

func (cmd *RenderCmd) outputSettings() (string, int) {
	format, width := cmd.format, cmd.width
	if cmd.flags.Config != nil {
		if format == "" {
			format = cmd.flags.Config.Render.Format
		}
		if width == 0 {
			width = cmd.flags.Config.Render.Width
		}
	}
	if format == "" {
		format = config.FormatText
	}
	if width == 0 {
		width = 80
	}
	return format, width
}

func (cmd *RenderCmd) renderFile(ctx context.Context) error {
	posts, err := cmd.fr.Read()
	if err != nil {
		return fmt.Errorf("read posts: %w", err)
	}

	if _, err := cmd.flags.App.Refresh.Refresh(ctx, gateway.Loaded(posts)); err != nil {
		return fmt.Errorf("render posts: %w", err)
	}
	return nil
}

// selectEmployee fills the selector and resolves which employee to show.
// Zero means the first option.
func (cmd *RenderCmd) selectEmployee(ctx context.Context) (int, error) {
	n, err := cmd.flags.App.Init(ctx)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNoEmployees
	}

	if cmd.employee != 0 || !cmd.isTTY() {
		return cmd.employee, nil
	}

	return pickEmployee(cmd.flags.App.Page.Options())
}

func pickEmployee(opts []roster.Option) (int, error) {
	choices := make([]huh.Option[int], 0, len(opts))
	for _, o := range opts {
		choices = append(choices, huh.NewOption(o.Label+" (#"+strconv.Itoa(o.ID)+")", o.ID))
	}

	var picked int
	err := huh.NewSelect[int]().
		Title("Employee").
		Options(choices...).
		Value(&picked).
		Run()
	if err != nil {
		return 0, err
	}
	return picked, nil
}

func (cmd *RenderCmd) write(w io.Writer, format string, width int) error {
	var (
		buf bytes.Buffer
		err error
	)

	page := cmd.flags.App.Page
	page.Doc.Read(func() {
		switch format {
		case config.FormatHTML:
			err = dom.WriteHTML(&buf, page.Surface)
		case config.FormatMarkdown:
			err = dom.WriteMarkdown(&buf, page.Surface)
		default:
			err = dom.WriteText(&buf, page.Surface)
		}
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}

	if format == config.FormatMarkdown && cmd.isTTY() {
		return writeGlamour(w, buf.String(), width)
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// writeGlamour styles markdown for the terminal. Styling failures fall back
// to the raw markdown.
func writeGlamour(w io.Writer, markdown string, width int) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, writing raw markdown")
		_, err = io.WriteString(w, markdown)
		return err
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, writing raw markdown")
		out = markdown
	}

	_, err = io.WriteString(w, out)
	return err
}
