// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	ErrorTextStyle     lipgloss.Style
	WarningTextStyle   lipgloss.Style

	// Document styles, one per element the renderer emits.
	PostTitleStyle      lipgloss.Style
	PostBodyStyle       lipgloss.Style
	PostMetaStyle       lipgloss.Style
	CatchPhraseStyle    lipgloss.Style
	CommentNameStyle    lipgloss.Style
	CommentBodyStyle    lipgloss.Style
	CommentPanelStyle   lipgloss.Style
	ControlStyle        lipgloss.Style
	ControlFocusedStyle lipgloss.Style
	PlaceholderStyle    lipgloss.Style

	// TUI chrome.
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	TitleStyle       lipgloss.Style
	StatusStyle      lipgloss.Style
	HelpStyle        lipgloss.Style

	// Toasts.
	ToastStyle        lipgloss.Style
	ToastInfoStyle    lipgloss.Style
	ToastSuccessStyle lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style

	// Notification history.
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	TimestampStyle  lipgloss.Style
	InfoTextStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	ErrorTextStyle = lipgloss.NewStyle().
		Foreground(p.Error)
	WarningTextStyle = lipgloss.NewStyle().
		Foreground(p.Warning)

	PostTitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	PostBodyStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	PostMetaStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	CatchPhraseStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Italic(true)
	CommentNameStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)
	CommentBodyStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	CommentPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.Surface).
		PaddingLeft(1)
	ControlStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Foreground(p.Muted)
	ControlFocusedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true)
	PlaceholderStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface)
	PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary)
	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Padding(0, 1).
		Bold(true)
	StatusStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	ToastStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Foreground(p.Foreground)
	ToastInfoStyle = ToastStyle.BorderForeground(p.Primary)
	ToastSuccessStyle = ToastStyle.BorderForeground(p.Success)
	ToastWarningStyle = ToastStyle.BorderForeground(p.Warning)
	ToastErrorStyle = ToastStyle.BorderForeground(p.Error)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)
	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	TimestampStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	InfoTextStyle = lipgloss.NewStyle().
		Foreground(p.Primary)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func hexPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	s := string(c)
	return &s
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	p := CurrentPalette

	fg := hexPtr(p.Foreground)
	primary := hexPtr(p.Primary)
	secondary := hexPtr(p.Secondary)
	muted := hexPtr(p.Muted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = hexPtr(p.Surface)
	cfg.H2.Color = primary
	cfg.H3.Color = secondary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Code.Color = secondary
	cfg.Item.Color = fg

	return cfg
}
