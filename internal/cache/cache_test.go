package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SetGetDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0, nil)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Set(ctx, "user:1", []byte(`{"id":1}`), time.Minute))

	got, err := c.Get(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":1}`), got)

	mr.FastForward(2 * time.Minute)
	got, err = c.Get(ctx, "user:1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, "user:2", []byte("x"), 0))
	require.NoError(t, c.Delete(ctx, "user:2"))
	got, _ = c.Get(ctx, "user:2")
	assert.Nil(t, got)
}

func TestClient_FailsSafeWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0, nil)
	t.Cleanup(func() { _ = c.Close() })
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestClient_NilIsEmptyCache(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}
