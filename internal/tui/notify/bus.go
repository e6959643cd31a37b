// Package notify fans out user-facing notifications inside the TUI and
// keeps them for the history view.
package notify

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hay-kot/roster/internal/core/notify"
)

// Subscriber receives each published notification on the publisher's
// goroutine. It must not block.
type Subscriber func(notify.Notification)

// Bus delivers notifications to subscribers and records them in a Store.
// Publish is safe from any goroutine.
type Bus struct {
	store notify.Store
	now   func() time.Time

	mu   sync.Mutex
	subs []Subscriber
}

// NewBus creates a bus. A nil store keeps no history.
func NewBus(store notify.Store) *Bus {
	return &Bus{store: store, now: time.Now}
}

func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	b.subs = append(b.subs, fn)
	b.mu.Unlock()
}

// Publish stamps n, records it and hands it to every subscriber. Subscribers
// see the id assigned by the store.
func (b *Bus) Publish(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = b.now()
	}

	if b.store != nil {
		id, err := b.store.Save(context.Background(), n)
		if err != nil {
			log.Warn().Err(err).Str("level", string(n.Level)).Msg("notification not recorded")
		} else {
			n.ID = id
		}
	}

	b.mu.Lock()
	subs := slices.Clone(b.subs)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

func (b *Bus) publishf(level notify.Level, format string, args []any) {
	b.Publish(notify.Notification{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (b *Bus) Errorf(format string, args ...any) { b.publishf(notify.LevelError, format, args) }

func (b *Bus) Warnf(format string, args ...any) { b.publishf(notify.LevelWarning, format, args) }

func (b *Bus) Infof(format string, args ...any) { b.publishf(notify.LevelInfo, format, args) }

// History returns the recorded notifications, newest first.
func (b *Bus) History(ctx context.Context) ([]notify.Notification, error) {
	if b.store == nil {
		return nil, nil
	}
	return b.store.List(ctx)
}

// Count returns how many notifications are recorded.
func (b *Bus) Count(ctx context.Context) (int64, error) {
	if b.store == nil {
		return 0, nil
	}
	return b.store.Count(ctx)
}

// Clear forgets every recorded notification.
func (b *Bus) Clear(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	return b.store.Clear(ctx)
}
