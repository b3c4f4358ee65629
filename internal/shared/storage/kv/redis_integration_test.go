//go:build integration

package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisStoreAgainstContainer(t *testing.T) {
	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := &RedisStore{Client: client, Prefix: "test:"}
	require.NoError(t, store.Set(ctx, "state", "v", time.Minute))

	ok, err := store.Exists(ctx, "state")
	require.NoError(t, err)
	require.True(t, ok)

	val, ok, err := store.Take(ctx, "state")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", val)

	_, ok, err = store.Take(ctx, "state")
	require.NoError(t, err)
	require.False(t, ok)
}
