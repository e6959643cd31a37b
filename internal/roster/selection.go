package roster

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hay-kot/roster/internal/core/dom"
	"github.com/hay-kot/roster/internal/core/feed"
	"github.com/hay-kot/roster/internal/core/logging"
)

// SelectionResult is the outcome of one selection change.
type SelectionResult struct {
	UserID    int
	RefreshID string
	Posts     []feed.Post
	Refresh   RefreshResult
	Stale     bool // overtaken by a newer selection; nothing was mounted
}

// HandleChange loads posts for the selector's current value.
func (a *App) HandleChange(ctx context.Context) (SelectionResult, error) {
	return a.Select(ctx, a.Page.Selected())
}

// Select loads and renders the posts of userID. A zero id falls back to the
// first option. The selector stays disabled while any selection is in
// flight, and starting a selection cancels the previous one. Failures are
// returned as *SelectionRefreshError after the selector is re-enabled.
func (a *App) Select(ctx context.Context, userID int) (SelectionResult, error) {
	if userID == 0 {
		if opts := a.Page.Options(); len(opts) > 0 {
			userID = opts[0].ID
		}
	}

	ctx, gen, done := a.begin(ctx, userID)
	defer done()

	res := SelectionResult{UserID: userID, RefreshID: uuid.NewString()}
	ctx = logging.WithRefreshID(ctx, res.RefreshID)
	ctx = logging.WithGeneration(ctx, gen)

	a.logger.Debug().Ctx(ctx).Int("user_id", userID).Msg("selection changed")

	posts, err := a.Gateway.ListPosts(ctx, userID)
	if err != nil {
		if gen != a.Refresh.Current() {
			res.Stale = true
			return res, nil
		}
		a.logger.Error().Ctx(ctx).Err(err).Int("user_id", userID).Msg("load posts failed")
		return res, &SelectionRefreshError{UserID: userID, Err: err}
	}
	res.Posts = posts.Posts

	res.Refresh, err = a.Refresh.RefreshAt(ctx, gen, posts)
	switch {
	case errors.Is(err, ErrStaleRefresh):
		res.Stale = true
		return res, nil
	case err != nil:
		return res, &SelectionRefreshError{UserID: userID, Err: err}
	}

	return res, nil
}

// begin marks a selection in flight: it starts a refresh generation,
// cancels the previous selection, records userID on the selector and
// disables it. The generation moves before the cancel so the previous
// selection always sees itself as stale. The returned func re-enables the
// selector once no selection is left in flight.
func (a *App) begin(ctx context.Context, userID int) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(ctx)
	sel := &selection{cancel: cancel}

	a.mu.Lock()
	gen := a.Refresh.Next()
	if a.current != nil {
		a.current.cancel()
	}
	a.current = sel
	a.inflight++
	a.Page.setDisabled(true)
	a.mu.Unlock()

	if userID != 0 {
		a.Page.Doc.Write(func() { a.Page.setSelected(userID) })
	}

	return ctx, gen, func() {
		cancel()

		a.mu.Lock()
		defer a.mu.Unlock()
		if a.current == sel {
			a.current = nil
		}
		a.inflight--
		if a.inflight == 0 {
			a.Page.setDisabled(false)
		}
	}
}

// Watch attaches a change listener to the selector. Each change runs
// HandleChange in its own goroutine and reports to fn. The returned func
// removes the listener.
func (a *App) Watch(ctx context.Context, fn func(SelectionResult, error)) func() {
	l := dom.NewListener(func(dom.Event) {
		go func() {
			res, err := a.HandleChange(ctx)
			if fn != nil {
				fn(res, err)
			}
		}()
	})

	a.Page.Doc.Write(func() {
		a.Page.Selector.AddEventListener(dom.EventChange, l)
	})

	return func() {
		a.Page.Doc.Write(func() {
			a.Page.Selector.RemoveEventListener(dom.EventChange, l)
		})
	}
}
