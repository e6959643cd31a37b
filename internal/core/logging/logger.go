// Package logging holds roster's zerolog conventions: component loggers and
// context fields that tie log lines to one refresh.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a logger derived from the global logger with a
// component identifier under the "cmp" key.
func Component(name string) zerolog.Logger {
	return Sub(log.Logger, name)
}

// Sub derives a component logger from parent. The ContextHook is attached so
// events logged with .Ctx(ctx) carry refresh fields.
func Sub(parent zerolog.Logger, name string) zerolog.Logger {
	return parent.With().Str("cmp", name).Logger().Hook(ContextHook{})
}
