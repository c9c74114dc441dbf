package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cinemind/studio-api/internal/core/ports"
)

// IntentCache implements ports.IntentCache.
// Key format: intent:<sha256 of snippet>.
type IntentCache struct {
	client redis.Cmdable
}

// NewIntentCache wraps the given Redis client.
func NewIntentCache(client redis.Cmdable) ports.IntentCache {
	return &IntentCache{client: client}
}

// Get returns the cached document for snippet, if any.
func (c *IntentCache) Get(ctx context.Context, snippet string) (json.RawMessage, bool, error) {
	b, err := c.client.Get(ctx, intentKey(snippet)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("intent cache get: %w", err)
	}
	return json.RawMessage(b), true, nil
}

// Put stores doc for snippet. A non-positive ttl disables caching.
func (c *IntentCache) Put(ctx context.Context, snippet string, doc json.RawMessage, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.client.Set(ctx, intentKey(snippet), []byte(doc), ttl).Err(); err != nil {
		return fmt.Errorf("intent cache put: %w", err)
	}
	return nil
}

func intentKey(snippet string) string {
	sum := sha256.Sum256([]byte(snippet))
	return "intent:" + hex.EncodeToString(sum[:])
}
