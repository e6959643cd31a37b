package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/roster/internal/core/notify"
	"github.com/hay-kot/roster/internal/core/styles"
	tuinotify "github.com/hay-kot/roster/internal/tui/notify"
)

const (
	historyWidthPercent = 65
	historyMinWidth     = 40
	historyMaxHeight    = 30
	historyMargin       = 4
	historyChrome       = 6 // border, title, blank lines, help
	historyHelp         = "[j/k] scroll  [D] clear all  [esc] close"
)

// NotificationView is the modal listing every notification the bus has
// recorded, newest first.
type NotificationView struct {
	bus      *tuinotify.Bus
	viewport viewport.Model
	count    int64
	width    int
}

func NewNotificationView(bus *tuinotify.Bus, width, height int) *NotificationView {
	v := &NotificationView{bus: bus, viewport: viewport.New(0, 0)}
	v.SetSize(width, height)
	return v
}

// SetSize fits the modal inside a width x height screen.
func (v *NotificationView) SetSize(width, height int) {
	v.width = min(max(width*historyWidthPercent/100, historyMinWidth), max(width-historyMargin, 10))
	v.viewport.Width = max(v.width-4, 1)
	v.viewport.Height = max(min(height-historyMargin, historyMaxHeight)-historyChrome, 1)
}

// Refresh reloads the history from the bus.
func (v *NotificationView) Refresh(ctx context.Context) error {
	items, err := v.bus.History(ctx)
	if err != nil {
		return fmt.Errorf("load notifications: %w", err)
	}
	count, err := v.bus.Count(ctx)
	if err != nil {
		return fmt.Errorf("count notifications: %w", err)
	}

	v.count = count
	if len(items) == 0 {
		v.viewport.SetContent(styles.PlaceholderStyle.Render("No notifications"))
	} else {
		lines := make([]string, 0, len(items))
		for _, n := range items {
			lines = append(lines, formatNotification(n, v.viewport.Width))
		}
		v.viewport.SetContent(strings.Join(lines, "\n"))
	}
	v.viewport.GotoTop()
	return nil
}

// Clear empties the history and shows the empty state.
func (v *NotificationView) Clear(ctx context.Context) error {
	if err := v.bus.Clear(ctx); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return v.Refresh(ctx)
}

func (v *NotificationView) ScrollUp()   { v.viewport.ScrollUp(1) }
func (v *NotificationView) ScrollDown() { v.viewport.ScrollDown(1) }

func (v *NotificationView) View() string {
	title := styles.ModalTitleStyle.Render(fmt.Sprintf("Notifications (%d)", v.count))
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		v.viewport.View(),
		"",
		styles.HelpStyle.Render(historyHelp),
	)
	return styles.ModalStyle.Width(v.width - 2).Render(body)
}

// Overlay centers the modal over background.
func (v *NotificationView) Overlay(background string, width, height int) string {
	modal := v.View()
	x := (width - lipgloss.Width(modal)) / 2
	y := max((height-lipgloss.Height(modal))/2, 0)
	return spliceOverlay(background, modal, x, y, height)
}

func formatNotification(n notify.Notification, width int) string {
	icon, style := styles.IconInfo, styles.InfoTextStyle
	switch n.Level {
	case notify.LevelError:
		icon, style = styles.IconError, styles.ErrorTextStyle
	case notify.LevelWarning:
		icon, style = styles.IconWarning, styles.WarningTextStyle
	}

	prefix := styles.TimestampStyle.Render(n.CreatedAt.Format("15:04:05")) + " " + style.Render(icon) + " "
	msg := lipgloss.NewStyle().
		Width(max(width-lipgloss.Width(prefix), 10)).
		Render(n.Message)
	return lipgloss.JoinHorizontal(lipgloss.Top, prefix, msg)
}
