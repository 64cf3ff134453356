//go:build integration

package kv

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/ikkim/jewel-storefront/config"
	"github.com/ikkim/jewel-storefront/internal/db"
	"github.com/ikkim/jewel-storefront/pkg/redis"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startContainer(t *testing.T, req testcontainers.ContainerRequest) (string, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start %s container: %v", req.Image, err)
	}

	// host:port of the first exposed port
	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get container endpoint: %v", err)
	}

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}
	return endpoint, cleanup
}

func TestGormStore_Postgres(t *testing.T) {
	addr, cleanup := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:14-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	})
	defer cleanup()

	sqlDB, err := sql.Open("postgres", fmt.Sprintf("postgres://testuser:testpass@%s/testdb?sslmode=disable", addr))
	require.NoError(t, err)
	defer sqlDB.Close()
	require.NoError(t, sqlDB.Ping())

	gormDB, err := db.Open(sqlDB)
	require.NoError(t, err)
	require.NoError(t, db.MigrateDB(gormDB))

	store := Namespace(NewGormStore(gormDB), "it")
	runStoreContract(t, store)

	// rows are visible to plain SQL under the namespaced key
	var value string
	err = sqlDB.QueryRow(`SELECT value FROM kv_entries WHERE storage_key = $1`, "session:it:cart").Scan(&value)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, value)
}

func TestRedisStore(t *testing.T) {
	addr, cleanup := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	})
	defer cleanup()

	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	client, err := redis.Connect(context.Background(), &config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	defer client.Close()

	runStoreContract(t, NewRedisStore(client))
}
