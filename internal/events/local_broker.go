package events

import (
	"context"
	"sync"

	"github.com/ikkim/jewel-storefront/pkg/logger"
)

type localSubscriber struct {
	ch chan Notification
}

// LocalBroker delivers notifications within this process
type LocalBroker struct {
	mu          sync.RWMutex
	subscribers map[string]map[*localSubscriber]struct{}
}

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{
		subscribers: make(map[string]map[*localSubscriber]struct{}),
	}
}

// Publish never blocks; a subscriber with a full buffer misses n
func (b *LocalBroker) Publish(_ context.Context, n Notification) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subscribers[n.SessionID] {
		select {
		case sub.ch <- n:
		default:
			logger.Warn("Subscriber buffer full, notification dropped", map[string]interface{}{
				"session_id": n.SessionID,
				"key":        n.Key,
			})
		}
	}
	return nil
}

func (b *LocalBroker) Subscribe(sessionID string) (*Subscription, error) {
	sub := &localSubscriber{ch: make(chan Notification, subscriptionBuffer)}

	b.mu.Lock()
	if b.subscribers[sessionID] == nil {
		b.subscribers[sessionID] = make(map[*localSubscriber]struct{})
	}
	b.subscribers[sessionID][sub] = struct{}{}
	b.mu.Unlock()

	return newSubscription(sub.ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers[sessionID], sub)
		if len(b.subscribers[sessionID]) == 0 {
			delete(b.subscribers, sessionID)
		}
		close(sub.ch)
	}), nil
}

// SubscriberCount reports live subscriptions for a session
func (b *LocalBroker) SubscriberCount(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[sessionID])
}
