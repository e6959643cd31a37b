package dom

import "slices"

// Event types dispatched by roster.
const (
	EventClick  = "click"
	EventChange = "change"
)

// Event is delivered to listeners.
type Event struct {
	Type   string
	Target *Node
}

// Listener wraps an event handler. Listeners are compared by pointer, so the
// same *Listener that was added must be passed to RemoveEventListener.
type Listener struct {
	fn func(Event)
}

// NewListener creates a listener for fn.
func NewListener(fn func(Event)) *Listener {
	return &Listener{fn: fn}
}

// Handle invokes the wrapped handler.
func (l *Listener) Handle(ev Event) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(ev)
}

// AddEventListener registers l for the event type. Adding the same listener
// twice is a no-op and returns false.
func (n *Node) AddEventListener(typ string, l *Listener) bool {
	if l == nil {
		return false
	}
	if slices.Contains(n.listeners[typ], l) {
		return false
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]*Listener)
	}
	n.listeners[typ] = append(n.listeners[typ], l)
	return true
}

// RemoveEventListener unregisters l. It returns false when l was not
// registered for typ.
func (n *Node) RemoveEventListener(typ string, l *Listener) bool {
	list := n.listeners[typ]
	idx := slices.Index(list, l)
	if idx < 0 {
		return false
	}
	n.listeners[typ] = slices.Delete(list, idx, idx+1)
	if len(n.listeners[typ]) == 0 {
		delete(n.listeners, typ)
	}
	return true
}

// Listeners returns a snapshot of the listeners registered for typ.
func (n *Node) Listeners(typ string) []*Listener {
	return slices.Clone(n.listeners[typ])
}

// ListenerCount returns how many listeners are registered for typ.
func (n *Node) ListenerCount(typ string) int {
	return len(n.listeners[typ])
}

// Dispatch invokes every listener registered for ev.Type on n and returns
// how many ran. Target defaults to n.
func (n *Node) Dispatch(ev Event) int {
	if ev.Target == nil {
		ev.Target = n
	}
	handlers := n.Listeners(ev.Type)
	for _, l := range handlers {
		l.Handle(ev)
	}
	return len(handlers)
}
