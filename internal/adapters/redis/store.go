package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"travelers/internal/adapters/observability"
	"travelers/internal/domain"
)

// TripStore keeps one JSON array of trip items per storage key. An absent
// key is an empty cart; an unparseable payload is reported as
// domain.ErrCorruptTrip so the caller can recover instead of crash.
type TripStore struct{ c *redis.Client }

func NewTripStore(addr, pass string, db int) *TripStore {
	return &TripStore{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

// NewTripStoreWithClient shares an existing client (tests use miniredis).
func NewTripStoreWithClient(c *redis.Client) *TripStore { return &TripStore{c: c} }

func (s *TripStore) Load(ctx context.Context, key string) ([]domain.TripItem, error) {
	b, err := s.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("trip", "miss")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("trip load %s: %w", key, err)
	}
	var items []domain.TripItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptTrip, key, err)
	}
	observability.ObserveCache("trip", "hit")
	return items, nil
}

func (s *TripStore) Save(ctx context.Context, key string, items []domain.TripItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("trip encode %s: %w", key, err)
	}
	observability.ObserveCache("trip", "set")
	// carts have no TTL: the trip survives until cleared
	return s.c.Set(ctx, key, b, 0).Err()
}

func (s *TripStore) Delete(ctx context.Context, key string) error {
	observability.ObserveCache("trip", "del")
	return s.c.Del(ctx, key).Err()
}
