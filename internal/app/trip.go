package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"travelers/internal/domain"
)

// TripService hands out per-session carts. The storage key is
// "<prefix>:<session>", so each client context owns exactly one record and
// nothing else touches trip storage directly.
type TripService struct {
	store     domain.TripStore
	keyPrefix string
}

func NewTripService(store domain.TripStore, keyPrefix string) *TripService {
	return &TripService{store: store, keyPrefix: keyPrefix}
}

// Cart rehydrates the session's cart from storage. This happens exactly once
// per Cart value; every later mutation writes the full sequence back.
// A corrupt payload is recovered as an empty cart and flagged, not failed.
func (s *TripService) Cart(ctx context.Context, sessionID string) (*Cart, error) {
	key := s.keyPrefix + ":" + sessionID
	items, err := s.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCorruptTrip) {
			return nil, err
		}
		log.Warn().Str("key", key).Err(err).Msg("trip storage corrupt, starting empty")
		return &Cart{store: s.store, key: key, recovered: true}, nil
	}
	return &Cart{store: s.store, key: key, items: items}, nil
}

// Cart is the ordered sequence of trip items for one session. Mutations are
// applied in call order and written through immediately; a failed write is
// logged but not retried.
type Cart struct {
	store     domain.TripStore
	key       string
	items     []domain.TripItem
	recovered bool
}

// Recovered reports whether the stored payload was unreadable and the cart
// was reset to empty on rehydrate.
func (c *Cart) Recovered() bool { return c.recovered }

func (c *Cart) Items() []domain.TripItem {
	out := make([]domain.TripItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalPrice is recomputed from the current sequence on every call.
func (c *Cart) TotalPrice() float64 {
	var sum float64
	for _, it := range c.items {
		sum += it.Price
	}
	return sum
}

// Add appends the snapshot to the end of the cart. Duplicates of the same id
// are kept as independent entries, and the id is not checked against the
// catalog.
func (c *Cart) Add(ctx context.Context, item domain.TripItem) []domain.TripItem {
	c.items = append(c.items, item)
	c.persist(ctx)
	return c.Items()
}

// Remove drops every entry whose id matches, not just the first. Duplicate
// ids are treated as one logical line item on removal.
func (c *Cart) Remove(ctx context.Context, id string) []domain.TripItem {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.persist(ctx)
	return c.Items()
}

// Clear empties the cart and erases the storage entry.
func (c *Cart) Clear(ctx context.Context) {
	c.items = nil
	if err := c.store.Delete(ctx, c.key); err != nil {
		log.Warn().Str("key", c.key).Err(err).Msg("trip storage delete failed")
	}
}

func (c *Cart) persist(ctx context.Context) {
	if err := c.store.Save(ctx, c.key, c.items); err != nil {
		log.Warn().Str("key", c.key).Err(err).Msg("trip storage write failed")
	}
}
