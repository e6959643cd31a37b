package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/roster/internal/core/notify"
)

// Buffer collects values produced on other goroutines and emits coalesced
// drain signals into the Bubble Tea loop.
type Buffer[T any] struct {
	mu     sync.Mutex
	items  []T
	signal chan struct{}
	msg    func() tea.Msg
}

// NewBuffer constructs a buffer whose WaitForSignal command yields msg().
func NewBuffer[T any](msg func() tea.Msg) *Buffer[T] {
	return &Buffer[T]{
		signal: make(chan struct{}, 1),
		msg:    msg,
	}
}

// Push appends v and emits a non-blocking drain signal.
func (b *Buffer[T]) Push(v T) {
	b.mu.Lock()
	b.items = append(b.items, v)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns all buffered values and clears the buffer.
func (b *Buffer[T]) Drain() []T {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.items) == 0 {
		return nil
	}

	out := make([]T, len(b.items))
	copy(out, b.items)
	b.items = b.items[:0]
	return out
}

// WaitForSignal blocks until there are values ready to drain.
func (b *Buffer[T]) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return b.msg()
	}
}

type drainNotificationsMsg struct{}

// NotificationBuffer buffers notifications published off the UI goroutine.
type NotificationBuffer struct {
	*Buffer[notify.Notification]
}

// NewNotificationBuffer constructs a buffer for async notification delivery.
func NewNotificationBuffer() *NotificationBuffer {
	return &NotificationBuffer{
		Buffer: NewBuffer[notify.Notification](func() tea.Msg { return drainNotificationsMsg{} }),
	}
}

// Push stamps n when it has no creation time and buffers it.
func (b *NotificationBuffer) Push(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	b.Buffer.Push(n)
}
