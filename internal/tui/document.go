package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/roster/internal/core/dom"
	"github.com/hay-kot/roster/internal/core/render"
	"github.com/hay-kot/roster/internal/core/styles"
)

// renderDocument draws the children of surface with the active styles. The
// control for focused is highlighted. Hidden panels are skipped. The caller
// must hold a read transaction.
func renderDocument(surface *dom.Node, focused string, width int) string {
	var blocks []string
	for _, n := range surface.Children() {
		if s := renderNode(n, focused, width, false); s != "" {
			blocks = append(blocks, s)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func renderNode(n *dom.Node, focused string, width int, inPanel bool) string {
	if n.Hidden() {
		return ""
	}

	w := max(width, 10)

	switch n.Tag {
	case "article":
		lines := make([]string, 0, n.ChildCount())
		for _, c := range n.Children() {
			if s := renderNode(c, focused, width, inPanel); s != "" {
				lines = append(lines, s)
			}
		}
		return strings.Join(lines, "\n")

	case "section":
		inner := width - 2
		var lines []string
		for _, c := range n.Children() {
			if s := renderNode(c, focused, inner, true); s != "" {
				lines = append(lines, s)
			}
		}
		if len(lines) == 0 {
			lines = append(lines, styles.PlaceholderStyle.Render("No comments."))
		}
		return styles.CommentPanelStyle.Render(strings.Join(lines, "\n\n"))

	case "h2":
		return styles.PostTitleStyle.Width(w).Render(styles.IconPost + " " + n.Text())

	case "h3":
		return styles.CommentNameStyle.Width(w).Render(n.Text())

	case "button":
		label := styles.IconComments + " " + n.Text()
		if n.Data(render.PostIDKey) == focused {
			return styles.ControlFocusedStyle.Render(label)
		}
		return styles.ControlStyle.Render(label)

	case "p":
		style := styles.PostBodyStyle
		switch {
		case n.HasClass(render.PlaceholderClass):
			style = styles.PlaceholderStyle
		case n.HasClass(render.MetaClass):
			style = styles.PostMetaStyle
		case n.HasClass(render.CatchPhraseClass):
			style = styles.CatchPhraseStyle
		case inPanel:
			style = styles.CommentBodyStyle
		}
		return style.Width(w).Render(n.Text())
	}

	return lipgloss.NewStyle().Width(w).Render(n.TextContent())
}
