package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ikkim/jewel-storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisBroker delivers notifications across processes over redis pub/sub
type RedisBroker struct {
	client redis.UniversalClient
}

func NewRedisBroker(client redis.UniversalClient) *RedisBroker {
	return &RedisBroker{client: client}
}

// Channel is the pub/sub channel of a session
func Channel(sessionID string) string {
	return fmt.Sprintf("storefront:%s", sessionID)
}

func (b *RedisBroker) Publish(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := b.client.Publish(ctx, Channel(n.SessionID), payload).Err(); err != nil {
		logger.Error("Failed to publish notification", err, map[string]interface{}{
			"session_id": n.SessionID,
			"key":        n.Key,
		})
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(sessionID string) (*Subscription, error) {
	ctx := context.Background()
	pubsub := b.client.Subscribe(ctx, Channel(sessionID))

	// wait for the subscription to be confirmed so no publish is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", Channel(sessionID), err)
	}

	messages := pubsub.Channel()
	out := make(chan Notification, subscriptionBuffer)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer close(out)
		for msg := range messages {
			var n Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				logger.Warn("Discarding malformed notification", map[string]interface{}{
					"channel": msg.Channel,
					"error":   err.Error(),
				})
				continue
			}
			select {
			case out <- n:
			default:
				logger.Warn("Subscriber buffer full, notification dropped", map[string]interface{}{
					"session_id": n.SessionID,
					"key":        n.Key,
				})
			}
		}
	}()

	return newSubscription(out, func() {
		pubsub.Close()
		<-done
	}), nil
}
