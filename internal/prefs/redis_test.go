package prefs

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBackend(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	b := NewRedisBackend(rdb)
	ctx := context.Background()

	_, ok, err := b.Load(ctx, "p1", KeyRegion)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Save(ctx, "p1", KeyRegion, `"KR"`))

	v, ok, err := b.Load(ctx, "p1", KeyRegion)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"KR"`, v)

	assert.Equal(t, `"KR"`, mr.HGet("prefs:p1", "selectedCountry"))
	assert.Equal(t, profileTTL, mr.TTL("prefs:p1"))
}

func TestRedisBackend_WithStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	NewStore(NewRedisBackend(rdb), "p1").SetPremium(true)
	assert.True(t, NewStore(NewRedisBackend(rdb), "p1").Premium())
}

func TestRedisBackend_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	s := NewStore(NewRedisBackend(rdb), "p1")
	s.SetLanguage("de")
	assert.Equal(t, "de", s.Language())
}
