package roster

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/hay-kot/roster/internal/core/logging"
	"github.com/hay-kot/roster/internal/core/render"
	"github.com/hay-kot/roster/internal/core/toggle"
	"github.com/hay-kot/roster/internal/data/gateway"
)

// RefreshResult describes what one refresh did to the surface.
type RefreshResult struct {
	Generation uint64
	Skipped    bool // degraded posts result; surface untouched
	Detached   int
	Cleared    int
	Mounted    int
	Attached   int
}

// Orchestrator is the only writer of the rendering surface. Each refresh
// runs detach, clear, render, attach in that order and is tagged with a
// generation. A refresh that is no longer the newest when it would touch the
// surface is discarded.
type Orchestrator struct {
	page      *Page
	renderer  *render.Renderer
	listeners *toggle.Listeners
	logger    zerolog.Logger

	gen atomic.Uint64
	mu  sync.Mutex
}

// NewOrchestrator creates an orchestrator for page.
func NewOrchestrator(page *Page, renderer *render.Renderer, listeners *toggle.Listeners, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		page:      page,
		renderer:  renderer,
		listeners: listeners,
		logger:    logging.Sub(logger, "refresh"),
	}
}

// Next starts a new generation and returns it. Every earlier generation
// becomes stale.
func (o *Orchestrator) Next() uint64 {
	return o.gen.Add(1)
}

// Current returns the newest generation.
func (o *Orchestrator) Current() uint64 {
	return o.gen.Load()
}

// Refresh starts a new generation and refreshes the surface with result.
func (o *Orchestrator) Refresh(ctx context.Context, result gateway.PostsResult) (RefreshResult, error) {
	return o.RefreshAt(ctx, o.Next(), result)
}

// RefreshAt refreshes the surface on behalf of generation gen. A degraded
// result is a no-op. ErrStaleRefresh is returned when gen is overtaken
// before the surface is cleared or before the rendered posts are mounted. A
// render failure leaves the surface cleared.
func (o *Orchestrator) RefreshAt(ctx context.Context, gen uint64, result gateway.PostsResult) (RefreshResult, error) {
	ctx = logging.WithGeneration(ctx, gen)
	res := RefreshResult{Generation: gen}

	if result.Degraded {
		o.logger.Debug().Ctx(ctx).AnErr("reason", result.Reason).Msg("degraded posts, nothing to refresh")
		res.Skipped = true
		return res, nil
	}

	if err := o.teardown(gen, &res); err != nil {
		o.logger.Debug().Ctx(ctx).Msg("refresh stale before clear")
		return res, err
	}

	rendered, err := o.renderer.Collection(ctx, result.Posts)
	if err != nil {
		if gen != o.Current() {
			return res, ErrStaleRefresh
		}
		o.logger.Error().Ctx(ctx).Err(err).Msg("render failed, surface left cleared")
		return res, fmt.Errorf("render posts: %w", err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.Current() {
		o.logger.Debug().Ctx(ctx).Msg("refresh stale after render, discarded")
		return res, ErrStaleRefresh
	}

	o.page.Doc.Write(func() {
		res.Mounted = len(render.Mount(o.page.Surface, rendered))
	})
	res.Attached = len(o.listeners.AttachAll())

	o.logger.Info().Ctx(ctx).
		Int("posts", len(result.Posts)).
		Int("mounted", res.Mounted).
		Int("controls", res.Attached).
		Msg("surface refreshed")

	return res, nil
}

// teardown detaches every listener and then clears the surface, unless gen
// is already stale.
func (o *Orchestrator) teardown(gen uint64, res *RefreshResult) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.Current() {
		return ErrStaleRefresh
	}

	res.Detached = len(o.listeners.DetachAll())
	o.page.Doc.Write(func() {
		res.Cleared = o.page.Surface.RemoveChildren()
	})
	return nil
}
