package toggle

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/roster/internal/core/dom"
	"github.com/hay-kot/roster/internal/core/logging"
	"github.com/hay-kot/roster/internal/core/render"
)

// Binding is one click listener attached to a toggle control.
type Binding struct {
	PostID   string
	Listener *dom.Listener
	Control  *dom.Node
	Panel    *dom.Node
}

// Listeners attaches click handlers to every toggle control on the surface
// and remembers them by post id so they can be removed again. Removing by
// the retained *dom.Listener is what makes detach effective.
type Listeners struct {
	doc     *dom.Document
	surface *dom.Node
	ctrl    *Controller
	logger  zerolog.Logger

	// OnToggle, when set, is called after each handled click.
	OnToggle func(postID string, state State, err error)

	mu       sync.Mutex
	bindings map[string][]Binding
}

// NewListeners creates a listener manager for the controller's surface.
func NewListeners(ctrl *Controller, logger zerolog.Logger) *Listeners {
	return &Listeners{
		doc:      ctrl.doc,
		surface:  ctrl.surface,
		ctrl:     ctrl,
		logger:   logging.Sub(logger, "listeners"),
		bindings: make(map[string][]Binding),
	}
}

func (l *Listeners) handler(postID string) *dom.Listener {
	return dom.NewListener(func(dom.Event) {
		state, err := l.ctrl.Toggle(postID)
		if l.OnToggle != nil {
			l.OnToggle(postID, state, err)
		}
	})
}

// AttachAll scans every <button> under the surface and attaches one click
// listener to each control carrying a post id. A control that is already
// bound is rebound, so it never ends up with two handlers. It returns every
// scanned button.
func (l *Listeners) AttachAll() []*dom.Node {
	l.mu.Lock()
	defer l.mu.Unlock()

	var buttons []*dom.Node
	attached := 0

	l.doc.Write(func() {
		buttons = l.surface.QuerySelectorAll("button")
		for _, btn := range buttons {
			postID := btn.Data(render.PostIDKey)
			if postID == "" {
				continue
			}

			l.unbindControlLocked(postID, btn)

			b := Binding{
				PostID:   postID,
				Listener: l.handler(postID),
				Control:  btn,
				Panel:    l.ctrl.panel(postID),
			}
			btn.AddEventListener(dom.EventClick, b.Listener)
			l.bindings[postID] = append(l.bindings[postID], b)
			attached++
		}
	})

	l.logger.Debug().Int("scanned", len(buttons)).Int("attached", attached).Msg("attach listeners")
	return buttons
}

// DetachAll removes every retained listener and empties the binding table.
// It returns the controls that had a listener removed.
func (l *Listeners) DetachAll() []*dom.Node {
	l.mu.Lock()
	defer l.mu.Unlock()

	var controls []*dom.Node
	l.doc.Write(func() {
		for postID, list := range l.bindings {
			for _, b := range list {
				if b.Control.RemoveEventListener(dom.EventClick, b.Listener) {
					controls = append(controls, b.Control)
				}
			}
			delete(l.bindings, postID)
		}
	})

	l.logger.Debug().Int("detached", len(controls)).Msg("detach listeners")
	return controls
}

// unbindControlLocked drops any existing binding for ctrl. Callers hold both
// l.mu and the document write transaction.
func (l *Listeners) unbindControlLocked(postID string, ctrl *dom.Node) {
	list := l.bindings[postID]
	kept := list[:0]
	for _, b := range list {
		if b.Control == ctrl {
			ctrl.RemoveEventListener(dom.EventClick, b.Listener)
			continue
		}
		kept = append(kept, b)
	}
	if len(kept) == 0 {
		delete(l.bindings, postID)
		return
	}
	l.bindings[postID] = kept
}

// Bindings returns a snapshot of the bindings for postID.
func (l *Listeners) Bindings(postID string) []Binding {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Binding(nil), l.bindings[postID]...)
}

// Len returns the number of retained bindings.
func (l *Listeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, list := range l.bindings {
		n += len(list)
	}
	return n
}
