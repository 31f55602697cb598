// Package events implements the in-process notification channel that decouples
// course cache invalidation from the category update path.
//
// Delivery is synchronous: Publish invokes every subscribed handler on the
// calling goroutine, in subscription order, before it returns. There is no
// queuing, no async fan-out, and no persistence of events. By the time a
// handler runs, the category update transaction has already committed, so
// handlers must treat the event as fire-and-forget and report failures through
// their own logging.
package events

import (
	"context"
	"sync"
)

// CategoryUpdated is published after a category row has been updated and the
// write-through cache refreshed. Subscribers use it to drop derived state
// (cached course snapshots embedding the old category).
type CategoryUpdated struct {
	CategoryID int64
}

// CategoryUpdatedHandler consumes a CategoryUpdated event. Handlers must not
// panic; returning is the only completion signal.
type CategoryUpdatedHandler func(ctx context.Context, ev CategoryUpdated)

// Notifier is a minimal synchronous publish/subscribe channel. It is safe for
// concurrent use: subscriptions are expected at wiring time but may happen at
// any point, and publishes snapshot the handler list before invoking it.
type Notifier struct {
	mu       sync.RWMutex
	handlers []CategoryUpdatedHandler
}

// NewNotifier returns a Notifier with no subscribers.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers h for all subsequent publishes.
func (n *Notifier) Subscribe(h CategoryUpdatedHandler) {
	if h == nil {
		return
	}
	n.mu.Lock()
	n.handlers = append(n.handlers, h)
	n.mu.Unlock()
}

// Publish delivers ev to every subscriber, in subscription order, on the
// calling goroutine. It returns once the last handler has returned.
func (n *Notifier) Publish(ctx context.Context, ev CategoryUpdated) {
	n.mu.RLock()
	hs := make([]CategoryUpdatedHandler, len(n.handlers))
	copy(hs, n.handlers)
	n.mu.RUnlock()

	for _, h := range hs {
		h(ctx, ev)
	}
}
