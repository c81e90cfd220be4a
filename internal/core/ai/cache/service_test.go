package cache

import (
	"context"
	"testing"
	"time"

	"meal-recommender/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestRedisKeyUsesPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	s := NewServiceWithClient(client, "meal:fallback:", time.Hour)
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, "meal:fallback:"+Key("prompt"), s.generateKey("prompt"))
}

func TestRedisUnavailableIsNotAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	s := NewServiceWithClient(client, "test:", time.Hour)
	t.Cleanup(func() { _ = s.Close() })

	_, err := s.Get(context.Background(), "prompt")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrCacheMiss)

	assert.Error(t, s.Set(context.Background(), "prompt", "value"))
}
