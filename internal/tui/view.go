package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/roster/internal/core/styles"
)

// View renders the TUI.
func (m Model) View() string {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	header := m.renderHeader(w)

	listStyle, docStyle := styles.PaneFocusedStyle, styles.PaneStyle
	if m.focus == paneDocument {
		listStyle, docStyle = styles.PaneStyle, styles.PaneFocusedStyle
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		listStyle.Render(m.list.View()),
		docStyle.Render(m.viewport.View()),
	)

	footer := styles.HelpStyle.Render(m.help.View(m.keys))

	out := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	if m.showHistory {
		out = m.history.Overlay(out, w, h)
	}
	return m.toastView.Overlay(out, w, h)
}

func (m Model) renderHeader(width int) string {
	title := styles.TitleStyle.Render("roster")

	indicator := statusIcon(m.loading)
	if m.loading {
		indicator = m.spinner.View()
	}

	status := styles.StatusStyle.Render(indicator + " " + m.status)
	gap := max(width-lipgloss.Width(title)-lipgloss.Width(status), 1)
	return title + strings.Repeat(" ", gap) + status
}
