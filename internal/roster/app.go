// Package roster wires the gateway, renderer and toggle components to one
// page and exposes the page's entry points: Init, selection changes and
// control activation.
package roster

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/roster/internal/core/dom"
	"github.com/hay-kot/roster/internal/core/feed"
	"github.com/hay-kot/roster/internal/core/logging"
	"github.com/hay-kot/roster/internal/core/render"
	"github.com/hay-kot/roster/internal/core/toggle"
	"github.com/hay-kot/roster/internal/data/gateway"
)

// Gateway is the remote data the page reads.
type Gateway interface {
	ListEmployees(ctx context.Context) ([]feed.Employee, error)
	ListPosts(ctx context.Context, userID int) (gateway.PostsResult, error)
	GetEmployee(ctx context.Context, id int) (feed.Employee, error)
	ListComments(ctx context.Context, postID int) ([]feed.Comment, error)
}

// App is the central entry point for page operations. Commands and the TUI
// consume App instead of the individual components.
type App struct {
	Page      *Page
	Gateway   Gateway
	Toggle    *toggle.Controller
	Listeners *toggle.Listeners
	Refresh   *Orchestrator

	logger zerolog.Logger

	mu       sync.Mutex
	inflight int
	current  *selection
}

type selection struct {
	cancel context.CancelFunc
}

// New constructs an App with a fresh page.
func New(gw Gateway, logger zerolog.Logger) *App {
	page := NewPage()
	ctrl := toggle.NewController(page.Doc, page.Surface, logger)
	listeners := toggle.NewListeners(ctrl, logger)
	renderer := render.New(gw, logger)

	return &App{
		Page:      page,
		Gateway:   gw,
		Toggle:    ctrl,
		Listeners: listeners,
		Refresh:   NewOrchestrator(page, renderer, listeners, logger),
		logger:    logging.Sub(logger, "roster"),
	}
}

// Controls returns the post ids of every toggle control on the surface in
// document order.
func (a *App) Controls() []string {
	var ids []string
	a.Page.Doc.Read(func() {
		for _, n := range a.Page.Surface.QuerySelectorAll("button[data-" + render.PostIDKey + "]") {
			ids = append(ids, n.Data(render.PostIDKey))
		}
	})
	return ids
}

// Activate clicks the toggle control for postID. It returns how many
// handlers ran.
func (a *App) Activate(postID string) (int, error) {
	ctrl, err := a.Toggle.Control(postID)
	if err != nil {
		return 0, err
	}
	return a.Page.Doc.Dispatch(ctrl, dom.EventClick), nil
}

// ExpandAll activates every control whose panel is hidden.
func (a *App) ExpandAll() error {
	for _, id := range a.Controls() {
		state, err := a.Toggle.State(id)
		if err != nil {
			return err
		}
		if state == toggle.Visible {
			continue
		}
		if _, err := a.Activate(id); err != nil {
			return err
		}
	}
	return nil
}
