package dom

import "sync"

// Document owns a tree rooted at an <html> element with a <body>. All access
// to attached nodes goes through Read and Write, which serialize mutation the
// way a single UI thread would. Transactions must not block on I/O and must
// not call back into the Document.
type Document struct {
	mu   sync.RWMutex
	root *Node
	body *Node
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	root := NewElement("html")
	body := root.AppendChild(NewElement("body"))
	return &Document{root: root, body: body}
}

// Root returns the <html> element.
func (d *Document) Root() *Node {
	return d.root
}

// Body returns the <body> element.
func (d *Document) Body() *Node {
	return d.body
}

// Read runs fn with shared access to the tree.
func (d *Document) Read(fn func()) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn()
}

// Write runs fn with exclusive access to the tree.
func (d *Document) Write(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
}

// Dispatch delivers an event of type typ to target. Listeners are collected
// under a read lock and invoked outside of it, so handlers may open their own
// transactions. It returns how many listeners ran.
func (d *Document) Dispatch(target *Node, typ string) int {
	if target == nil {
		return 0
	}

	var handlers []*Listener
	d.Read(func() {
		handlers = target.Listeners(typ)
	})

	ev := Event{Type: typ, Target: target}
	for _, l := range handlers {
		l.Handle(ev)
	}
	return len(handlers)
}
