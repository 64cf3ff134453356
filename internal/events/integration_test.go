//go:build integration

package events

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisBroker(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}()

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	// two clients stand in for two server processes
	publisherClient := redis.NewClient(&redis.Options{Addr: endpoint})
	defer publisherClient.Close()
	subscriberClient := redis.NewClient(&redis.Options{Addr: endpoint})
	defer subscriberClient.Close()

	publisher := NewRedisBroker(publisherClient)
	subscriber := NewRedisBroker(subscriberClient)

	sub, err := subscriber.Subscribe("s1")
	require.NoError(t, err)
	other, err := subscriber.Subscribe("s2")
	require.NoError(t, err)
	defer other.Close()

	require.NoError(t, publisher.Publish(ctx, Notification{SessionID: "s1", Key: "orders"}))

	n := receive(t, sub)
	assert.Equal(t, Notification{SessionID: "s1", Key: "orders"}, n)
	assertNothing(t, other)

	sub.Close()
	_, ok := <-sub.C
	assert.False(t, ok)
}
