package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts refresh_id and generation from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if id := GetRefreshID(ctx); id != "" {
		e.Str("refresh_id", id)
	}

	if gen := GetGeneration(ctx); gen != 0 {
		e.Uint64("generation", gen)
	}
}
