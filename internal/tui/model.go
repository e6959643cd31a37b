// Package tui implements the Bubble Tea TUI for roster.
package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/roster/internal/core/styles"
	"github.com/hay-kot/roster/internal/core/toggle"
	"github.com/hay-kot/roster/internal/roster"
	tuinotify "github.com/hay-kot/roster/internal/tui/notify"
)

type pane int

const (
	paneEmployees pane = iota
	paneDocument
)

const employeePaneWidth = 32

// Options configures the model.
type Options struct {
	// DefaultEmployee is selected once the page is initialized. Zero picks
	// the first employee.
	DefaultEmployee int
	// Bus receives failure notifications. A bus without a store is created
	// when nil.
	Bus *tuinotify.Bus
}

type initDoneMsg struct {
	count int
	err   error
}

type drainSelectionsMsg struct{}

type selectionDone struct {
	res roster.SelectionResult
	err error
}

// employeeItem adapts a selector option to the bubbles list.
type employeeItem struct {
	opt roster.Option
}

func (i employeeItem) Title() string       { return i.opt.Label }
func (i employeeItem) Description() string { return "employee #" + strconv.Itoa(i.opt.ID) }
func (i employeeItem) FilterValue() string { return i.opt.Label }

// Model is the root Bubble Tea model.
type Model struct {
	ctx  context.Context
	app  *roster.App
	opts Options
	keys KeyMap

	help     help.Model
	list     list.Model
	viewport viewport.Model
	spinner  spinner.Model

	focus     pane
	controls  []string
	cursor    int
	loading   bool
	reloading bool
	status    string
	width     int
	height    int

	bus           *tuinotify.Bus
	notifications *NotificationBuffer
	selections    *Buffer[selectionDone]
	toasts        *ToastController
	toastView     *ToastView
	history       *NotificationView
	showHistory   bool
	unwatch       func()
}

// New creates the model and starts watching the page's selector.
func New(ctx context.Context, app *roster.App, opts Options) Model {
	bus := opts.Bus
	if bus == nil {
		bus = tuinotify.NewBus(nil)
	}

	notifications := NewNotificationBuffer()
	bus.Subscribe(notifications.Push)

	// Clicks dispatch on the Update goroutine, so a refused toggle lands
	// in the notification buffer like any other failure.
	app.Listeners.OnToggle = func(postID string, _ toggle.State, err error) {
		if err != nil {
			bus.Warnf("toggle post %s: %v", postID, err)
		}
	}

	selections := NewBuffer[selectionDone](func() tea.Msg { return drainSelectionsMsg{} })
	unwatch := app.Watch(ctx, func(res roster.SelectionResult, err error) {
		selections.Push(selectionDone{res: res, err: err})
	})

	employees := list.New(nil, list.NewDefaultDelegate(), employeePaneWidth, 20)
	employees.Title = "Employees"
	employees.SetShowHelp(false)
	employees.SetShowStatusBar(false)

	toasts := NewToastController()

	return Model{
		ctx:           ctx,
		app:           app,
		opts:          opts,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		list:          employees,
		viewport:      viewport.New(80, 20),
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		loading:       true,
		status:        "Loading employees...",
		bus:           bus,
		notifications: notifications,
		selections:    selections,
		toasts:        toasts,
		toastView:     NewToastView(toasts),
		history:       NewNotificationView(bus, 80, 24),
		unwatch:       unwatch,
	}
}

// Init starts page initialization and the background listeners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		initPage(m.ctx, m.app),
		m.spinner.Tick,
		m.selections.WaitForSignal(),
		m.notifications.WaitForSignal(),
	)
}

func initPage(ctx context.Context, app *roster.App) tea.Cmd {
	return func() tea.Msg {
		n, err := app.Init(ctx)
		return initDoneMsg{count: n, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.refreshDocument()
		return m, nil

	case initDoneMsg:
		return m.handleInit(msg)

	case drainSelectionsMsg:
		for _, done := range m.selections.Drain() {
			m.handleSelection(done)
		}
		return m, m.selections.WaitForSignal()

	case drainNotificationsMsg:
		for _, n := range m.notifications.Drain() {
			m.toasts.Push(n)
		}
		if m.showHistory {
			m.refreshHistory()
		}
		cmds := []tea.Cmd{m.notifications.WaitForSignal()}
		if m.toasts.HasToasts() && !m.toasts.Ticking() {
			m.toasts.SetTicking(true)
			cmds = append(cmds, scheduleToastTick())
		}
		return m, tea.Batch(cmds...)

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleInit(msg initDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loading = false
		m.status = "Could not load employees"
		m.bus.Errorf("%v", msg.err)
		return m, nil
	}

	opts := m.app.Page.Options()
	items := make([]list.Item, 0, len(opts))
	for _, o := range opts {
		items = append(items, employeeItem{opt: o})
	}
	cmd := m.list.SetItems(items)

	if msg.count == 0 {
		m.loading = false
		m.status = "No employees"
		m.refreshDocument()
		return m, cmd
	}

	id := 0
	for i, o := range opts {
		if o.ID == m.opts.DefaultEmployee {
			id = o.ID
			m.list.Select(i)
		}
	}
	m.choose(id)
	return m, cmd
}

func (m *Model) handleSelection(done selectionDone) {
	m.loading = m.app.Page.Disabled()
	if done.res.Stale {
		return
	}

	reloaded := m.reloading
	m.reloading = false

	if done.err != nil {
		m.status = "Load failed"
		m.bus.Errorf("%v", done.err)
	} else {
		m.status = fmt.Sprintf("%d posts", len(done.res.Posts))
		if reloaded {
			m.bus.Infof("Reloaded %d posts", len(done.res.Posts))
		}
	}

	m.controls = m.app.Controls()
	m.cursor = 0
	m.viewport.GotoTop()
	m.refreshDocument()
}

// choose sets the selector and fires its change event. The selection runs
// on the watcher goroutine and reports back through m.selections.
func (m *Model) choose(id int) {
	m.loading = true
	m.status = "Loading posts..."
	m.app.Page.Choose(id)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.SettingFilter() {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if m.showHistory {
		return m.handleHistoryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.unwatch != nil {
			m.unwatch()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Focus):
		if m.focus == paneEmployees {
			m.focus = paneDocument
		} else {
			m.focus = paneEmployees
		}
		m.refreshDocument()
		return m, nil

	case key.Matches(msg, m.keys.Dismiss) && m.toasts.HasToasts():
		m.toasts.Dismiss()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.History):
		m.showHistory = true
		m.refreshHistory()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if !m.app.Page.Disabled() {
			m.reloading = true
			m.choose(m.app.Page.Selected())
		}
		return m, nil
	}

	if m.focus == paneEmployees {
		return m.handleEmployeeKey(msg)
	}
	return m.handleDocumentKey(msg)
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.unwatch != nil {
			m.unwatch()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Dismiss), key.Matches(msg, m.keys.History):
		m.showHistory = false
	case key.Matches(msg, m.keys.HistoryDown):
		m.history.ScrollDown()
	case key.Matches(msg, m.keys.HistoryUp):
		m.history.ScrollUp()
	case key.Matches(msg, m.keys.HistoryClear):
		if err := m.history.Clear(m.ctx); err != nil {
			m.bus.Errorf("%v", err)
		}
	}
	return m, nil
}

func (m *Model) refreshHistory() {
	if err := m.history.Refresh(m.ctx); err != nil {
		log.Warn().Err(err).Msg("refresh notification history")
	}
}

func (m Model) handleEmployeeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Select) {
		// mirrors a disabled <select>: no new choice while one is loading
		if m.app.Page.Disabled() {
			return m, nil
		}
		if item, ok := m.list.SelectedItem().(employeeItem); ok {
			m.choose(item.opt.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleDocumentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		if m.cursor < len(m.controls)-1 {
			m.cursor++
		}
		m.refreshDocument()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if m.cursor > 0 {
			m.cursor--
		}
		m.refreshDocument()
		return m, nil

	case key.Matches(msg, m.keys.Activate):
		postID := m.focusedControl()
		if postID == "" {
			return m, nil
		}
		if _, err := m.app.Activate(postID); err != nil {
			m.bus.Warnf("toggle post %s: %v", postID, err)
		}
		m.refreshDocument()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) focusedControl() string {
	if m.cursor < 0 || m.cursor >= len(m.controls) {
		return ""
	}
	return m.controls[m.cursor]
}

// layout sizes the panes for the current window.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	bodyHeight := max(m.height-4, 3) // header, footer, borders
	if m.help.ShowAll {
		bodyHeight = max(bodyHeight-2, 3)
	}

	m.list.SetSize(employeePaneWidth, bodyHeight)
	m.viewport.Width = max(m.width-employeePaneWidth-4, 10)
	m.viewport.Height = bodyHeight
	m.help.Width = m.width
	m.history.SetSize(m.width, m.height)
}

func (m *Model) refreshDocument() {
	focused := ""
	if m.focus == paneDocument {
		focused = m.focusedControl()
	}

	var content string
	m.app.Page.Doc.Read(func() {
		content = renderDocument(m.app.Page.Surface, focused, m.viewport.Width-1)
	})
	m.viewport.SetContent(content)
}

func statusIcon(loading bool) string {
	if loading {
		return ""
	}
	return styles.IconCheck
}
