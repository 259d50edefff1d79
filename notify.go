package keyseq

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/keyseq/key"
)

// ErrSubscriptionNotFound is returned when unsubscribing an unknown or
// already-removed subscription.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// Subscription identifies one registered pending-keys observer.
type Subscription struct {
	id string
}

// ID returns the subscription identifier.
func (s Subscription) ID() string {
	return s.id
}

// notifier delivers pending-keys notifications to observers, synchronously
// and in subscription order.
type notifier struct {
	mu        sync.RWMutex
	observers []observer
}

type observer struct {
	id string
	fn func(pending key.Sequence)
}

func newNotifier() *notifier {
	return &notifier{
		observers: make([]observer, 0),
	}
}

func (n *notifier) subscribe(fn func(pending key.Sequence)) Subscription {
	id := uuid.NewString()

	n.mu.Lock()
	defer n.mu.Unlock()
	n.observers = append(n.observers, observer{id: id, fn: fn})
	return Subscription{id: id}
}

func (n *notifier) unsubscribe(sub Subscription) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, o := range n.observers {
		if o.id == sub.id {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// publish invokes every observer with the snapshot. Each observer gets its
// own copy so one cannot mutate what another sees.
func (n *notifier) publish(pending key.Sequence) {
	n.mu.RLock()
	observers := make([]observer, len(n.observers))
	copy(observers, n.observers)
	n.mu.RUnlock()

	for _, o := range observers {
		o.fn(pending.Clone())
	}
}
