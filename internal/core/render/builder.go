// Package render turns employees, posts and comments into dom nodes.
//
// Builders in this file are pure. Renderer methods fetch through a Source and
// may suspend on the network; they build detached nodes and never touch an
// attached document.
package render

import (
	"strconv"

	"github.com/hay-kot/roster/internal/core/dom"
	"github.com/hay-kot/roster/internal/core/feed"
)

// Document contract shared with the toggle controller.
const (
	PostIDKey        = "post-id"
	ShowLabel        = "Show Comments"
	HideLabel        = "Hide Comments"
	CommentsClass    = "comments"
	PlaceholderClass = "default-text"
	MetaClass        = "meta"
	CatchPhraseClass = "catch-phrase"
	PlaceholderText  = "Select an Employee to display their posts."
)

// Text builds an element with the given tag, text and classes. An empty tag
// builds a paragraph.
func Text(tag, text string, classes ...string) *dom.Node {
	if tag == "" {
		tag = "p"
	}
	n := dom.NewElement(tag)
	n.SetText(text)
	n.AddClass(classes...)
	return n
}

// Options builds one <option> per employee with the id as value and the name
// as label. It returns nil for a nil slice.
func Options(employees []feed.Employee) []*dom.Node {
	if employees == nil {
		return nil
	}

	opts := make([]*dom.Node, 0, len(employees))
	for _, e := range employees {
		opt := Text("option", e.Name)
		opt.SetAttr("value", strconv.Itoa(e.ID))
		opts = append(opts, opt)
	}
	return opts
}

// ToggleControl builds the "Show Comments" button for a post.
func ToggleControl(postID string) *dom.Node {
	btn := Text("button", ShowLabel)
	btn.SetData(PostIDKey, postID)
	return btn
}
