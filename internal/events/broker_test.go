package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) Notification {
	t.Helper()
	select {
	case n, ok := <-sub.C:
		require.True(t, ok, "subscription closed")
		return n
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
		return Notification{}
	}
}

func assertNothing(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case n := <-sub.C:
		t.Fatalf("unexpected notification %+v", n)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLocalBroker_DeliversToSameSessionOnly(t *testing.T) {
	b := NewLocalBroker()
	ctx := context.Background()

	first, err := b.Subscribe("s1")
	require.NoError(t, err)
	defer first.Close()
	second, err := b.Subscribe("s1")
	require.NoError(t, err)
	defer second.Close()
	other, err := b.Subscribe("s2")
	require.NoError(t, err)
	defer other.Close()

	require.NoError(t, b.Publish(ctx, Notification{SessionID: "s1", Key: "cart"}))

	assert.Equal(t, "cart", receive(t, first).Key)
	assert.Equal(t, "cart", receive(t, second).Key)
	assertNothing(t, other)
}

func TestLocalBroker_CloseUnsubscribes(t *testing.T) {
	b := NewLocalBroker()
	sub, err := b.Subscribe("s1")
	require.NoError(t, err)
	assert.Equal(t, 1, b.SubscriberCount("s1"))

	sub.Close()
	sub.Close()

	assert.Equal(t, 0, b.SubscriberCount("s1"))
	_, ok := <-sub.C
	assert.False(t, ok)

	// publishing after close must not panic
	assert.NoError(t, b.Publish(context.Background(), Notification{SessionID: "s1", Key: "cart"}))
}

func TestLocalBroker_PublishNeverBlocks(t *testing.T) {
	b := NewLocalBroker()
	sub, err := b.Subscribe("s1")
	require.NoError(t, err)
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriptionBuffer*3; i++ {
			_ = b.Publish(context.Background(), Notification{SessionID: "s1", Key: "wishlist"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	assert.Len(t, sub.C, subscriptionBuffer)
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "storefront:abc", Channel("abc"))
}
