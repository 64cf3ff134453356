// Package events carries "a session key changed" notifications between
// the services that write the session store and the views that render it.
package events

import (
	"context"
	"sync"
)

// Notification says that key of a session's store was rewritten
type Notification struct {
	SessionID string `json:"session_id"`
	Key       string `json:"key"`
}

// Broker fans notifications out to every subscriber of the same session
type Broker interface {
	Publish(ctx context.Context, n Notification) error
	Subscribe(sessionID string) (*Subscription, error)
}

// subscriptionBuffer bounds how far a slow subscriber may fall behind
// before notifications to it are dropped
const subscriptionBuffer = 32

// Subscription delivers a session's notifications on C until Close
type Subscription struct {
	C <-chan Notification

	once    sync.Once
	closeFn func()
}

func newSubscription(c <-chan Notification, closeFn func()) *Subscription {
	return &Subscription{C: c, closeFn: closeFn}
}

// Close stops delivery and closes C. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(s.closeFn)
}
