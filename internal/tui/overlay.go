package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay writes the lines of fg over background with its top-left
// cell at (x, y). Background cells on either side of fg keep their styling.
// background is padded to height lines first.
func spliceOverlay(background, fg string, x, y, height int) string {
	if fg == "" {
		return background
	}

	bg := strings.Split(background, "\n")
	for len(bg) < height {
		bg = append(bg, "")
	}

	x = max(x, 0)
	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= len(bg) {
			continue
		}

		left := ansi.Truncate(bg[row], x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}

		var b strings.Builder
		b.WriteString(left)
		b.WriteString("\x1b[0m")
		b.WriteString(line)
		b.WriteString("\x1b[0m")

		if end := x + ansi.StringWidth(line); end < ansi.StringWidth(bg[row]) {
			b.WriteString(ansi.TruncateLeft(bg[row], end, ""))
		}
		bg[row] = b.String()
	}

	return strings.Join(bg, "\n")
}
