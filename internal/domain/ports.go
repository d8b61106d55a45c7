package domain

import (
	"context"
	"errors"
)

// ErrCorruptTrip marks a trip payload that could not be decoded. Callers
// treat it as an empty cart and surface a recoverable-error signal instead
// of failing.
var ErrCorruptTrip = errors.New("trip storage corrupt")

// CatalogRepository is the read-only catalog loaded once at startup.
// Absence is reported with ok=false, never as an error.
type CatalogRepository interface {
	All() []Item
	ByID(id string) (Item, bool)
	Regions() []string
	Destinations() []Destination
	Testimonials() []Testimonial
}

// TripStore persists one cart per key. Load returns an empty slice for an
// absent key and wraps ErrCorruptTrip for unparseable payloads.
type TripStore interface {
	Load(ctx context.Context, key string) ([]TripItem, error)
	Save(ctx context.Context, key string, items []TripItem) error
	Delete(ctx context.Context, key string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Settler performs the settlement step of a booking. The production
// implementation simulates latency; a real payment integration slots in
// without changing the state machine. Settle must honor ctx cancellation.
type Settler interface {
	Settle(ctx context.Context, subtotal float64) error
}
