// Package dom provides a small mutable document tree with attribute queries
// and event listeners. It is the rendering target for roster's pages and is
// intentionally generic: it knows nothing about employees or posts.
package dom

import (
	"slices"
	"strings"
)

// FragmentTag is the tag of fragment nodes. Appending a fragment moves its
// children into the new parent and leaves the fragment empty.
const FragmentTag = "#fragment"

// HiddenClass marks a node as not displayed. Writers skip hidden subtrees.
const HiddenClass = "hide"

// Node is a single element in the tree. A Node is not safe for concurrent
// use; nodes attached to a Document must only be touched inside one of its
// transactions.
type Node struct {
	Tag string

	attrs     map[string]string
	classes   []string
	text      string
	children  []*Node
	parent    *Node
	listeners map[string][]*Listener
}

// NewElement creates a detached element with the given tag.
func NewElement(tag string) *Node {
	return &Node{Tag: strings.ToLower(tag)}
}

// NewFragment creates an empty fragment.
func NewFragment() *Node {
	return &Node{Tag: FragmentTag}
}

// IsFragment reports whether n is a fragment.
func (n *Node) IsFragment() bool {
	return n.Tag == FragmentTag
}

// Parent returns the parent node or nil when detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// AppendChild appends child to n and returns it. A child that already has a
// parent is moved. When child is a fragment its children are moved instead
// and the (now empty) fragment is returned.
func (n *Node) AppendChild(child *Node) *Node {
	if child == nil || child == n {
		return child
	}

	if child.IsFragment() {
		moved := child.children
		child.children = nil
		for _, c := range moved {
			c.parent = n
		}
		n.children = append(n.children, moved...)
		return child
	}

	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// RemoveChild detaches child from n. It returns false when child is not a
// direct child of n.
func (n *Node) RemoveChild(child *Node) bool {
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return false
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
	return true
}

// RemoveChildren detaches every child of n, last first, and returns how many
// were removed.
func (n *Node) RemoveChildren() int {
	removed := 0
	for last := n.LastChild(); last != nil; last = n.LastChild() {
		n.RemoveChild(last)
		removed++
	}
	return removed
}

// Attr returns the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets the named attribute. The "class" attribute replaces the class
// list.
func (n *Node) SetAttr(name, value string) {
	if name == "class" {
		n.classes = strings.Fields(value)
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// RemoveAttr deletes the named attribute.
func (n *Node) RemoveAttr(name string) {
	if name == "class" {
		n.classes = nil
		return
	}
	delete(n.attrs, name)
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(name string) bool {
	if name == "class" {
		return len(n.classes) > 0
	}
	_, ok := n.attrs[name]
	return ok
}

// AttrNames returns attribute names in sorted order.
func (n *Node) AttrNames() []string {
	names := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// ID returns the id attribute.
func (n *Node) ID() string {
	return n.attrs["id"]
}

// Data returns the data-<key> attribute.
func (n *Node) Data(key string) string {
	return n.attrs["data-"+key]
}

// SetData sets the data-<key> attribute.
func (n *Node) SetData(key, value string) {
	n.SetAttr("data-"+key, value)
}

// Classes returns a copy of the class list.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// ClassName returns the class list joined by spaces.
func (n *Node) ClassName() string {
	return strings.Join(n.classes, " ")
}

// HasClass reports whether the class is present.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// AddClass adds each class that is not already present.
func (n *Node) AddClass(classes ...string) {
	for _, c := range classes {
		if c != "" && !n.HasClass(c) {
			n.classes = append(n.classes, c)
		}
	}
}

// RemoveClass removes each given class.
func (n *Node) RemoveClass(classes ...string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool {
		return slices.Contains(classes, c)
	})
}

// ToggleClass flips the class and reports whether it is present afterwards.
func (n *Node) ToggleClass(class string) bool {
	if n.HasClass(class) {
		n.RemoveClass(class)
		return false
	}
	n.AddClass(class)
	return true
}

// Hidden reports whether n carries HiddenClass.
func (n *Node) Hidden() bool {
	return n.HasClass(HiddenClass)
}

// Text returns the node's own text.
func (n *Node) Text() string {
	return n.text
}

// SetText replaces the node's children with the given text.
func (n *Node) SetText(text string) {
	n.RemoveChildren()
	n.text = text
}

// TextContent returns the text of n and all of its descendants, in document
// order, joined without separators.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		sb.WriteString(c.text)
		return true
	})
	return sb.String()
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the visited node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}
