package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/sailhq/sailpost/pkg/cache"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	Value string
}

func prepareMiniRedis(t *testing.T) *redis.Client {
	s := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{
		Addr: s.Addr(),
		DB:   1,
	})
}

func TestInMemory(t *testing.T) {
	c, err := cache.NewInMemory()
	assert.NotNil(t, c)
	assert.NoError(t, err)

	t.Run("miss", func(t *testing.T) {
		var out payload
		err := c.GetAs(context.Background(), "missing", &out)
		assert.ErrorIs(t, err, cache.ErrKeyNotExist)
	})

	t.Run("roundtrip", func(t *testing.T) {
		in := payload{Value: "this is value"}
		err := c.SetExp(context.Background(), "key", in, -1)
		assert.NoError(t, err)

		var out payload
		err = c.GetAs(context.Background(), "key", &out)
		assert.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("delete", func(t *testing.T) {
		err := c.Delete(context.Background(), "key")
		assert.NoError(t, err)

		var out payload
		err = c.GetAs(context.Background(), "key", &out)
		assert.ErrorIs(t, err, cache.ErrKeyNotExist)
	})
}

func TestRedis(t *testing.T) {
	t.Run("bad dep", func(t *testing.T) {
		c, err := cache.NewRedis(cache.RedisConfig{})
		assert.Nil(t, c)
		assert.Error(t, err)
	})

	t.Run("miss", func(t *testing.T) {
		c, err := cache.NewRedis(cache.RedisConfig{DB: prepareMiniRedis(t)})
		assert.NoError(t, err)

		var out payload
		err = c.GetAs(context.Background(), "missing", &out)
		assert.ErrorIs(t, err, cache.ErrKeyNotExist)
	})

	t.Run("roundtrip with expiry", func(t *testing.T) {
		c, err := cache.NewRedis(cache.RedisConfig{DB: prepareMiniRedis(t)})
		assert.NoError(t, err)

		in := payload{Value: "this is value"}
		err = c.SetExp(context.Background(), "key", in, time.Second)
		assert.NoError(t, err)

		var out payload
		err = c.GetAs(context.Background(), "key", &out)
		assert.NoError(t, err)
		assert.Equal(t, in, out)

		err = c.Delete(context.Background(), "key")
		assert.NoError(t, err)
	})

	t.Run("closed connection", func(t *testing.T) {
		conn := prepareMiniRedis(t)
		c, err := cache.NewRedis(cache.RedisConfig{DB: conn})
		assert.NoError(t, err)

		assert.NoError(t, conn.Close())

		var out payload
		err = c.GetAs(context.Background(), "key", &out)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})
}
