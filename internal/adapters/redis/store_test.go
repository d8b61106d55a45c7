package redisad_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "travelers/internal/adapters/redis"
	"travelers/internal/app"
	"travelers/internal/domain"
)

func newTestStore(t *testing.T) (*redisad.TripStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return redisad.NewTripStoreWithClient(client), mr
}

func TestTripStore_AbsentKeyIsEmptyCart(t *testing.T) {
	store, _ := newTestStore(t)

	items, err := store.Load(context.Background(), "travelers-trip:s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty, got %+v", items)
	}
}

func TestTripStore_SaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := []domain.TripItem{
		{ID: "tour-song-kul", Type: domain.TypeTour, Name: "Song-Kul Lake Horse Trek", Price: 145, Currency: "USD"},
		{ID: "hostel-apple", Type: domain.TypeHostel, Name: "Apple Hostel Bishkek", Price: 12, Currency: "USD", Date: "2026-09-01"},
		{ID: "hostel-apple", Type: domain.TypeHostel, Name: "Apple Hostel Bishkek", Price: 12, Currency: "USD"},
	}
	if err := store.Save(ctx, "travelers-trip:s1", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := store.Load(ctx, "travelers-trip:s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("length mismatch: %d", len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("item %d differs: %+v vs %+v", i, out[i], in[i])
		}
	}
}

func TestTripStore_CorruptPayload(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Set("travelers-trip:s1", "{not json")

	_, err := store.Load(context.Background(), "travelers-trip:s1")
	if !errors.Is(err, domain.ErrCorruptTrip) {
		t.Fatalf("expected ErrCorruptTrip, got %v", err)
	}
}

func TestTripStore_DeleteErasesKey(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_ = store.Save(ctx, "travelers-trip:s1", []domain.TripItem{{ID: "x"}})
	if err := store.Delete(ctx, "travelers-trip:s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("travelers-trip:s1") {
		t.Fatal("key still present")
	}
}

// Full rehydrate cycle through the app layer: what one process wrote, a
// fresh Cart in a "new process" reads back identically, and a corrupt
// record degrades to an empty recovered cart.
func TestTripStore_CartRehydrate(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	svc := app.NewTripService(store, "travelers-trip")
	cart, err := svc.Cart(ctx, "s1")
	if err != nil {
		t.Fatalf("cart: %v", err)
	}
	cart.Add(ctx, domain.TripItem{ID: "t1", Type: domain.TypeTour, Name: "Trek", Price: 90, Currency: "USD"})
	cart.Add(ctx, domain.TripItem{ID: "t1", Type: domain.TypeTour, Name: "Trek", Price: 90, Currency: "USD"})

	fresh, err := app.NewTripService(store, "travelers-trip").Cart(ctx, "s1")
	if err != nil {
		t.Fatalf("rehydrate: %v", err)
	}
	if len(fresh.Items()) != 2 || fresh.TotalPrice() != 180 {
		t.Fatalf("round trip lost data: %+v", fresh.Items())
	}

	mr.Set("travelers-trip:s1", "xx")
	recovered, err := svc.Cart(ctx, "s1")
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if !recovered.Recovered() || len(recovered.Items()) != 0 {
		t.Fatalf("expected recovered empty cart")
	}
}
