package roster

import (
	"context"

	"github.com/hay-kot/roster/internal/core/render"
)

// Init fetches every employee and fills the selector with one option each,
// replacing any existing options. It returns the number of options. An
// empty list returns early and leaves the selector untouched.
func (a *App) Init(ctx context.Context) (int, error) {
	employees, err := a.Gateway.ListEmployees(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("page init failed")
		return 0, &PageInitError{Err: err}
	}
	if len(employees) == 0 {
		a.logger.Warn().Msg("no employees returned")
		return 0, nil
	}

	opts := render.Options(employees)
	a.Page.Doc.Write(func() {
		a.Page.Selector.RemoveChildren()
		for _, o := range opts {
			a.Page.Selector.AppendChild(o)
		}
	})

	a.logger.Info().Int("employees", len(opts)).Msg("page initialized")
	return len(opts), nil
}
