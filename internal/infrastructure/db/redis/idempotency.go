package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
)

const (
	idempotencyTTL = time.Hour
	pendingMarker  = "pending"
)

// IdempotencyStore implements ports.IdempotencyStore.
// Key format: idem:analyze:<client key>. The value is "pending" while the
// first request runs, then the id of the record it produced.
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewIdempotencyStore wraps the given Redis client. A non-positive ttl falls
// back to one hour.
func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration) ports.IdempotencyStore {
	if ttl <= 0 {
		ttl = idempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key for a new analysis, or reports the record that already
// answered it.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (int64, bool, error) {
	k := idempotencyKey(key)

	// Two attempts cover a key expiring between SETNX and GET.
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
		if err != nil {
			return 0, false, fmt.Errorf("idempotency reserve: %w", err)
		}
		if ok {
			return 0, true, nil
		}

		val, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return 0, false, fmt.Errorf("idempotency lookup: %w", err)
		}
		return parseReservation(val)
	}
	return 0, false, domain.ErrRequestInProgress
}

// Complete points key at the finished record.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, recordID int64) error {
	if err := s.client.Set(ctx, idempotencyKey(key), strconv.FormatInt(recordID, 10), s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release drops a reservation whose request failed so the client can retry.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKey(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func parseReservation(val string) (int64, bool, error) {
	if val == pendingMarker {
		return 0, false, domain.ErrRequestInProgress
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency value %q: %w", val, err)
	}
	return id, false, nil
}

func idempotencyKey(key string) string {
	return "idem:analyze:" + key
}
