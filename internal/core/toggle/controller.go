// Package toggle flips a post's comment panel between hidden and visible and
// keeps click listeners on the toggle controls in sync with the document.
//
// Toggle state lives only in the document: a panel carrying the hide class
// pairs with a control reading "Show Comments", a visible panel pairs with
// "Hide Comments". Both halves always change in one write transaction.
package toggle

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/roster/internal/core/dom"
	"github.com/hay-kot/roster/internal/core/logging"
	"github.com/hay-kot/roster/internal/core/render"
)

var (
	// ErrNoPostID is returned when no post id was supplied.
	ErrNoPostID = errors.New("no post id")
	// ErrNoControl is returned when a post id was supplied but no control
	// carries it.
	ErrNoControl = errors.New("no toggle control for post")
	// ErrNoPanel is returned when a post id was supplied but no panel
	// carries it.
	ErrNoPanel = errors.New("no comment panel for post")
	// ErrInconsistent is returned when a panel and its control disagree.
	ErrInconsistent = errors.New("panel and control disagree")
)

// State is the derived display state of one post's comments.
type State int

const (
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// Label returns the control text that pairs with s.
func (s State) Label() string {
	if s == Visible {
		return render.HideLabel
	}
	return render.ShowLabel
}

// Controller reads and flips toggle state inside one rendering surface.
type Controller struct {
	doc     *dom.Document
	surface *dom.Node
	logger  zerolog.Logger
}

// NewController creates a controller scoped to surface.
func NewController(doc *dom.Document, surface *dom.Node, logger zerolog.Logger) *Controller {
	return &Controller{doc: doc, surface: surface, logger: logging.Sub(logger, "toggle")}
}

func panelSelector(postID string) string {
	return fmt.Sprintf(`section[data-%s=%q]`, render.PostIDKey, postID)
}

func controlSelector(postID string) string {
	return fmt.Sprintf(`button[data-%s=%q]`, render.PostIDKey, postID)
}

// panel and control must be called inside a transaction.
func (c *Controller) panel(postID string) *dom.Node {
	return c.surface.QuerySelector(panelSelector(postID))
}

func (c *Controller) control(postID string) *dom.Node {
	return c.surface.QuerySelector(controlSelector(postID))
}

// Panel locates the comment panel for postID.
func (c *Controller) Panel(postID string) (*dom.Node, error) {
	if postID == "" {
		return nil, ErrNoPostID
	}

	var n *dom.Node
	c.doc.Read(func() { n = c.panel(postID) })
	if n == nil {
		return nil, ErrNoPanel
	}
	return n, nil
}

// Control locates the toggle control for postID. It never creates one; see
// EnsureControl.
func (c *Controller) Control(postID string) (*dom.Node, error) {
	if postID == "" {
		return nil, ErrNoPostID
	}

	var n *dom.Node
	c.doc.Read(func() { n = c.control(postID) })
	if n == nil {
		return nil, ErrNoControl
	}
	return n, nil
}

// EnsureControl returns the control for postID, creating and attaching a
// fresh "Show Comments" control to the surface when none exists. created
// reports whether a control was synthesized.
func (c *Controller) EnsureControl(postID string) (ctrl *dom.Node, created bool, err error) {
	if postID == "" {
		return nil, false, ErrNoPostID
	}

	c.doc.Write(func() {
		ctrl = c.control(postID)
		if ctrl == nil {
			ctrl = c.surface.AppendChild(render.ToggleControl(postID))
			created = true
		}
	})

	if created {
		c.logger.Debug().Str("post_id", postID).Msg("synthesized toggle control")
	}
	return ctrl, created, nil
}

// State reads the current state for postID.
func (c *Controller) State(postID string) (State, error) {
	if postID == "" {
		return Hidden, ErrNoPostID
	}

	var (
		state State
		err   error
	)
	c.doc.Read(func() {
		state, err = c.stateLocked(postID)
	})
	return state, err
}

func (c *Controller) stateLocked(postID string) (State, error) {
	panel := c.panel(postID)
	if panel == nil {
		return Hidden, ErrNoPanel
	}
	ctrl := c.control(postID)
	if ctrl == nil {
		return Hidden, ErrNoControl
	}

	state := Visible
	if panel.Hidden() {
		state = Hidden
	}
	if ctrl.Text() != state.Label() {
		return state, fmt.Errorf("post %s: %w", postID, ErrInconsistent)
	}
	return state, nil
}

// Toggle flips the panel and the control label for postID in one write
// transaction and returns the new state. Nothing changes when either half is
// missing or the pair is already inconsistent.
func (c *Controller) Toggle(postID string) (State, error) {
	if postID == "" {
		return Hidden, ErrNoPostID
	}

	var (
		next State
		err  error
	)
	c.doc.Write(func() {
		var cur State
		cur, err = c.stateLocked(postID)
		if err != nil {
			return
		}

		next = Visible
		if cur == Visible {
			next = Hidden
		}

		c.panel(postID).ToggleClass(dom.HiddenClass)
		c.control(postID).SetText(next.Label())
	})

	if err != nil {
		c.logger.Warn().Err(err).Str("post_id", postID).Msg("toggle refused")
		return Hidden, err
	}
	return next, nil
}
