package dom

import (
	"bufio"
	"html"
	"io"
	"strings"
)

// WriteHTML serializes n and its subtree as indented HTML. Fragments
// serialize as their children.
func WriteHTML(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	writeHTML(bw, n, 0)
	return bw.Flush()
}

func writeHTML(w *bufio.Writer, n *Node, depth int) {
	if n.IsFragment() {
		for _, c := range n.children {
			writeHTML(w, c, depth)
		}
		return
	}

	indent := strings.Repeat("  ", depth)
	_, _ = w.WriteString(indent + "<" + n.Tag)
	if len(n.classes) > 0 {
		_, _ = w.WriteString(` class="` + html.EscapeString(n.ClassName()) + `"`)
	}
	for _, name := range n.AttrNames() {
		_, _ = w.WriteString(" " + name + `="` + html.EscapeString(n.attrs[name]) + `"`)
	}
	_, _ = w.WriteString(">")

	if len(n.children) == 0 {
		_, _ = w.WriteString(html.EscapeString(n.text) + "</" + n.Tag + ">\n")
		return
	}

	_, _ = w.WriteString("\n")
	if n.text != "" {
		_, _ = w.WriteString(indent + "  " + html.EscapeString(n.text) + "\n")
	}
	for _, c := range n.children {
		writeHTML(w, c, depth+1)
	}
	_, _ = w.WriteString(indent + "</" + n.Tag + ">\n")
}

// WriteText writes the visible text of n, one line per text-bearing node.
// Nested <section> content is indented. Hidden subtrees are skipped.
func WriteText(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	writeText(bw, n, 0)
	return bw.Flush()
}

func writeText(w *bufio.Writer, n *Node, depth int) {
	if n.Hidden() {
		return
	}

	if n.text != "" {
		line := n.text
		if n.Tag == "button" {
			line = "[" + line + "]"
		}
		_, _ = w.WriteString(strings.Repeat("    ", depth) + line + "\n")
	}

	childDepth := depth
	if n.Tag == "section" {
		childDepth++
	}
	for _, c := range n.children {
		writeText(w, c, childDepth)
	}

	if n.Tag == "article" && depth == 0 {
		_, _ = w.WriteString("\n")
	}
}

// WriteMarkdown renders the visible part of n as Markdown. Headings map to
// ATX headings, <section> content becomes a block quote and top-level
// articles are separated by rules.
func WriteMarkdown(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	writeMarkdown(bw, n, 0)
	return bw.Flush()
}

func writeMarkdown(w *bufio.Writer, n *Node, quote int) {
	if n.Hidden() {
		return
	}

	prefix := strings.Repeat("> ", quote)
	line := func(s string) {
		_, _ = w.WriteString(prefix + s + "\n")
		_, _ = w.WriteString(strings.TrimRight(prefix, " ") + "\n")
	}

	switch n.Tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Tag[1] - '0')
		line(strings.Repeat("#", level) + " " + n.text)
	case "button":
		line("`[" + n.text + "]`")
	case "option":
		line("- " + n.text)
	default:
		if n.text != "" {
			line(n.text)
		}
	}

	childQuote := quote
	if n.Tag == "section" {
		childQuote++
	}
	for _, c := range n.children {
		writeMarkdown(w, c, childQuote)
	}

	if n.Tag == "article" && quote == 0 {
		_, _ = w.WriteString("---\n\n")
	}
}
