package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ikkim/jewel-storefront/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{Hub: hub, SessionID: sessionID, Send: make(chan []byte, sendBufferSize)}
}

func readEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		var e Event
		require.NoError(t, json.Unmarshal(data, &e))
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHub_ForwardsStoreNotificationsToSessionViews(t *testing.T) {
	broker := events.NewLocalBroker()
	hub := NewHub(broker)
	go hub.Run()
	defer hub.Stop()

	a1 := newTestClient(hub, "a")
	a2 := newTestClient(hub, "a")
	b := newTestClient(hub, "b")
	hub.Register(a1)
	hub.Register(a2)
	hub.Register(b)

	require.Eventually(t, func() bool {
		return hub.ViewCount("a") == 2 && broker.SubscriberCount("a") == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, broker.Publish(context.Background(), events.Notification{SessionID: "a", Key: "cart"}))

	assert.Equal(t, Event{Type: EventStorageUpdate, Key: "cart"}, readEvent(t, a1))
	assert.Equal(t, Event{Type: EventStorageUpdate, Key: "cart"}, readEvent(t, a2))
	assert.Len(t, b.Send, 0)
}

func TestHub_SendToAllReachesEverySession(t *testing.T) {
	hub := NewHub(events.NewLocalBroker())
	go hub.Run()
	defer hub.Stop()

	a := newTestClient(hub, "a")
	b := newTestClient(hub, "b")
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool {
		return hub.ViewCount("a") == 1 && hub.ViewCount("b") == 1
	}, time.Second, 10*time.Millisecond)

	index := 2
	require.NoError(t, hub.SendToAll(Event{Type: EventSlide, Index: &index}))

	for _, c := range []*Client{a, b} {
		e := readEvent(t, c)
		assert.Equal(t, EventSlide, e.Type)
		require.NotNil(t, e.Index)
		assert.Equal(t, 2, *e.Index)
	}
}

func TestHub_LastViewReleasesSubscription(t *testing.T) {
	broker := events.NewLocalBroker()
	hub := NewHub(broker)
	go hub.Run()
	defer hub.Stop()

	c := newTestClient(hub, "a")
	hub.Register(c)
	require.Eventually(t, func() bool { return broker.SubscriberCount("a") == 1 }, time.Second, 10*time.Millisecond)

	hub.Unregister(c)
	require.Eventually(t, func() bool {
		return hub.ViewCount("a") == 0 && broker.SubscriberCount("a") == 0
	}, time.Second, 10*time.Millisecond)

	_, ok := <-c.Send
	assert.False(t, ok)
}

func TestHub_RegisterAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(events.NewLocalBroker())
	go hub.Run()
	hub.Stop()

	done := make(chan int)
	go func() {
		accepted := 0
		// more than the register buffer holds
		for i := 0; i < 300; i++ {
			if hub.Register(newTestClient(hub, "late")) {
				accepted++
			}
		}
		done <- accepted
	}()

	select {
	case accepted := <-done:
		assert.Zero(t, accepted)
	case <-time.After(time.Second):
		t.Fatal("Register blocked after Stop")
	}
	assert.Zero(t, hub.ViewCount("late"))
}
