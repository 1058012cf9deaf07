package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	return mr
}

func TestInit(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	require.NoError(t, Init("redis://"+mr.Addr(), ""))
	require.NotNil(t, GetClient())

	require.Error(t, Init("not-a-url", ""))
}

func TestSetGetDel(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, Set(ctx, "k", "v", time.Minute))

	val, err := Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", val)

	require.NoError(t, Del(ctx, "k"))
	_, err = Get(ctx, "k")
	require.ErrorIs(t, err, goredis.Nil)
}

func TestSetNX(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	ok, err := SetNX(ctx, "lock", "1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = SetNX(ctx, "lock", "2", time.Minute)
	require.NoError(t, err)
	require.False(t, ok)
}
