package roster

import (
	"strconv"

	"github.com/hay-kot/roster/internal/core/dom"
)

// SelectorID is the id of the employee selector.
const SelectorID = "selectMenu"

// Option is one entry of the employee selector.
type Option struct {
	ID    int
	Label string
}

// Page is the document plus the two elements every component works on: the
// rendering surface and the selector control.
type Page struct {
	Doc      *dom.Document
	Surface  *dom.Node
	Selector *dom.Node
}

// NewPage builds an empty page: a <select id="selectMenu"> followed by an
// empty <main> surface.
func NewPage() *Page {
	doc := dom.NewDocument()
	p := &Page{Doc: doc}

	doc.Write(func() {
		p.Selector = dom.NewElement("select")
		p.Selector.SetAttr("id", SelectorID)
		doc.Body().AppendChild(p.Selector)
		p.Surface = doc.Body().AppendChild(dom.NewElement("main"))
	})

	return p
}

// Options returns the selector's options in order.
func (p *Page) Options() []Option {
	var opts []Option
	p.Doc.Read(func() {
		for _, n := range p.Selector.QuerySelectorAll("option") {
			v, _ := n.Attr("value")
			id, err := strconv.Atoi(v)
			if err != nil {
				continue
			}
			opts = append(opts, Option{ID: id, Label: n.Text()})
		}
	})
	return opts
}

// Selected returns the selector's current value, or 0 when nothing is
// selected.
func (p *Page) Selected() int {
	var v string
	p.Doc.Read(func() { v, _ = p.Selector.Attr("value") })

	id, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return id
}

// Choose sets the selector's value and dispatches a change event on it.
func (p *Page) Choose(id int) int {
	p.Doc.Write(func() { p.setSelected(id) })
	return p.Doc.Dispatch(p.Selector, dom.EventChange)
}

// Disabled reports whether the selector is disabled.
func (p *Page) Disabled() bool {
	var disabled bool
	p.Doc.Read(func() { disabled = p.Selector.HasAttr("disabled") })
	return disabled
}

func (p *Page) setDisabled(disabled bool) {
	p.Doc.Write(func() {
		if disabled {
			p.Selector.SetAttr("disabled", "")
			return
		}
		p.Selector.RemoveAttr("disabled")
	})
}

// setSelected must run inside a write transaction.
func (p *Page) setSelected(id int) {
	p.Selector.SetAttr("value", strconv.Itoa(id))
	for _, n := range p.Selector.QuerySelectorAll("option") {
		v, _ := n.Attr("value")
		if v == strconv.Itoa(id) {
			n.SetAttr("selected", "")
		} else {
			n.RemoveAttr("selected")
		}
	}
}
