package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"travelers/internal/domain"
)

type BookingStatus string

const (
	BookingReviewing  BookingStatus = "reviewing"
	BookingConfirming BookingStatus = "confirming"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingFailed     BookingStatus = "failed"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	// ErrBookingState is returned for transitions the machine does not allow,
	// e.g. confirming a booking that is already confirmed or mid-settlement.
	ErrBookingState = errors.New("booking state does not allow confirm")
)

// PriceBreakdown is the displayed total. The service fee is a flat 0 today
// but stays an explicit line so the display contract does not change when a
// real fee appears. Free items contribute 0 and are not discounted further.
type PriceBreakdown struct {
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"serviceFee"`
	Total      float64 `json:"total"`
	Currency   string  `json:"currency"`
}

// Booking is one pass through reviewing -> confirming -> confirmed. failed
// is reachable from confirming (settlement error or cancellation) and allows
// a retry back through confirming.
type Booking struct {
	ID         string            `json:"id"`
	SessionID  string            `json:"-"`
	FromCart   bool              `json:"fromCart"`
	Items      []domain.TripItem `json:"items"`
	Breakdown  PriceBreakdown    `json:"breakdown"`
	Status     BookingStatus     `json:"status"`
	FailReason string            `json:"failReason,omitempty"`
}

// BookingService drives the confirm flow. Bookings live in an in-memory
// registry for the process lifetime; the only durable side effect is
// clearing the trip cart after a confirmed full-cart booking.
type BookingService struct {
	repo    domain.CatalogRepository
	trips   *TripService
	settler domain.Settler

	mu       sync.Mutex
	bookings map[string]*Booking
}

func NewBookingService(r domain.CatalogRepository, t *TripService, s domain.Settler) *BookingService {
	return &BookingService{repo: r, trips: t, settler: s, bookings: map[string]*Booking{}}
}

// Begin resolves the booking target and opens it in the reviewing state.
// itemID selects a single catalog item; an unknown id yields an empty target
// rather than an error. An empty itemID books the session's whole cart,
// snapshotted now.
func (s *BookingService) Begin(ctx context.Context, sessionID, itemID string) (Booking, error) {
	var items []domain.TripItem
	fromCart := itemID == ""
	if fromCart {
		cart, err := s.trips.Cart(ctx, sessionID)
		if err != nil {
			return Booking{}, fmt.Errorf("load cart: %w", err)
		}
		items = cart.Items()
	} else if it, ok := s.repo.ByID(itemID); ok {
		items = []domain.TripItem{domain.TripSnapshot(it)}
	}

	b := &Booking{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		FromCart:  fromCart,
		Items:     items,
		Breakdown: breakdown(items),
		Status:    BookingReviewing,
	}
	s.mu.Lock()
	s.bookings[b.ID] = b
	s.mu.Unlock()
	return *b, nil
}

// Confirm moves the booking to confirming and runs settlement. The caller's
// goroutine waits for the settler, so cancelling ctx (client navigated away)
// aborts the settlement and lands in failed without touching the cart. Once
// settlement succeeds the state is confirmed and, for full-cart bookings
// only, the session's cart is cleared.
func (s *BookingService) Confirm(ctx context.Context, id string) (Booking, error) {
	s.mu.Lock()
	b, ok := s.bookings[id]
	if !ok {
		s.mu.Unlock()
		return Booking{}, ErrBookingNotFound
	}
	if b.Status != BookingReviewing && b.Status != BookingFailed {
		st := *b
		s.mu.Unlock()
		return st, ErrBookingState
	}
	b.Status = BookingConfirming
	b.FailReason = ""
	s.mu.Unlock()

	if err := s.settler.Settle(ctx, b.Breakdown.Subtotal); err != nil {
		s.mu.Lock()
		b.Status = BookingFailed
		b.FailReason = err.Error()
		st := *b
		s.mu.Unlock()
		return st, nil
	}

	s.mu.Lock()
	b.Status = BookingConfirmed
	st := *b
	s.mu.Unlock()

	if b.FromCart {
		cart, err := s.trips.Cart(ctx, b.SessionID)
		if err != nil {
			log.Warn().Str("booking", b.ID).Err(err).Msg("cart load after confirm failed")
			return st, nil
		}
		cart.Clear(ctx)
	}
	return st, nil
}

func (s *BookingService) Get(id string) (Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return Booking{}, false
	}
	return *b, true
}

func breakdown(items []domain.TripItem) PriceBreakdown {
	var sub float64
	currency := "USD"
	for i, it := range items {
		sub += it.Price
		if i == 0 && it.Currency != "" {
			currency = it.Currency
		}
	}
	return PriceBreakdown{Subtotal: sub, ServiceFee: 0, Total: sub, Currency: currency}
}

// DelaySettler simulates settlement latency. It waits the configured delay
// or returns the context error if the caller cancels first.
type DelaySettler struct {
	Delay time.Duration
}

func (s DelaySettler) Settle(ctx context.Context, _ float64) error {
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
