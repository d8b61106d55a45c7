package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelers/internal/domain"
)

func hostel(id string, price, rating float64) domain.Item {
	return domain.Item{
		ID: id, Name: "Hostel " + id, Location: "Bishkek", Description: "a hostel",
		Price: price, Rating: rating, Region: "Chuy",
		Details: domain.HostelDetails{},
	}
}

func tour(id string, price, rating float64) domain.Item {
	return domain.Item{
		ID: id, Name: "Tour " + id, Location: "Karakol", Description: "a tour",
		Price: price, Rating: rating, Region: "Issyk-Kul",
		Details: domain.TourDetails{},
	}
}

func place(id string, price, rating float64) domain.Item {
	return domain.Item{
		ID: id, Name: "Place " + id, Location: "Osh", Description: "a place",
		Price: price, Rating: rating, Region: "Osh",
		Details: domain.PlaceDetails{},
	}
}

type fakeCatalog struct{ items []domain.Item }

func (f *fakeCatalog) All() []domain.Item { return f.items }
func (f *fakeCatalog) ByID(id string) (domain.Item, bool) {
	for _, it := range f.items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.Item{}, false
}
func (f *fakeCatalog) Regions() []string                  { return nil }
func (f *fakeCatalog) Destinations() []domain.Destination { return nil }
func (f *fakeCatalog) Testimonials() []domain.Testimonial { return nil }

func ids(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestApplyFilter_NoOpReturnsAllInOrder(t *testing.T) {
	items := []domain.Item{hostel("h1", 10, 4), tour("t1", 90, 5), place("p1", 0, 4.2)}

	for _, f := range []domain.Filter{
		{},
		{Type: "all", Region: "all", Budget: "all", Rating: "all"},
	} {
		got := domain.ApplyFilter(f, items)
		assert.Equal(t, ids(items), ids(got))
	}
}

func TestSearch_MatchesNameLocationDescription(t *testing.T) {
	items := []domain.Item{
		hostel("h1", 10, 4), // name "Hostel h1", location Bishkek
		tour("t1", 90, 5),   // location Karakol
		place("p1", 0, 4.2), // description "a place"
	}

	assert.Equal(t, []string{"h1"}, ids(domain.Search("HOSTEL", items)))
	assert.Equal(t, []string{"t1"}, ids(domain.Search("karakol", items)))
	assert.Equal(t, []string{"p1"}, ids(domain.Search("a place", items)))
	assert.Empty(t, ids(domain.Search("samarkand", items)))
}

func TestFilterType_KeepsOnlyKindInOrder(t *testing.T) {
	items := []domain.Item{hostel("h1", 10, 4), tour("t1", 90, 5), hostel("h2", 20, 3), place("p1", 0, 4)}

	got := domain.FilterType(domain.TypeHostel, items)
	require.Equal(t, []string{"h1", "h2"}, ids(got))
	for _, it := range got {
		assert.Equal(t, domain.TypeHostel, it.Type())
	}
}

func TestFilterBudget_FreeBucketIsExactlyPriceZero(t *testing.T) {
	items := []domain.Item{hostel("h1", 0, 4), hostel("h2", 1, 4), place("p1", 0, 4)}

	assert.Equal(t, []string{"h1", "p1"}, ids(domain.FilterBudget("free", items)))
	// a free item never matches a numeric bucket, even the one starting at 0
	assert.Equal(t, []string{"h2"}, ids(domain.FilterBudget("0-25", items)))
}

func TestFilterBudget_TopBucketIsOpenEnded(t *testing.T) {
	items := []domain.Item{hostel("h1", 99.99, 4), hostel("h2", 100, 4), hostel("h3", 5000, 4)}

	assert.Equal(t, []string{"h2", "h3"}, ids(domain.FilterBudget("100+", items)))
}

// Documents the intentional boundary overlap: numeric buckets are inclusive
// on both ends, so a price sitting exactly on a boundary appears in both
// adjoining buckets.
func TestFilterBudget_BoundaryPriceInBothAdjoiningBuckets(t *testing.T) {
	items := []domain.Item{hostel("h25", 25, 4), hostel("h50", 50, 4)}

	assert.Contains(t, ids(domain.FilterBudget("0-25", items)), "h25")
	assert.Contains(t, ids(domain.FilterBudget("25-50", items)), "h25")
	assert.Contains(t, ids(domain.FilterBudget("25-50", items)), "h50")
	assert.Contains(t, ids(domain.FilterBudget("50-100", items)), "h50")
}

func TestFilterRating_Threshold(t *testing.T) {
	items := []domain.Item{hostel("h1", 10, 3.4), hostel("h2", 10, 3.5), hostel("h3", 10, 5)}

	assert.Equal(t, []string{"h2", "h3"}, ids(domain.FilterRating(3.5, items)))
}

func TestSimilarItems_SameKindExclSelfByRating(t *testing.T) {
	cat := &fakeCatalog{items: []domain.Item{
		hostel("h1", 10, 4.1),
		hostel("h2", 20, 4.9),
		tour("t1", 90, 5),
		hostel("h3", 30, 4.9), // ties with h2, must stay after it (stable)
		hostel("h4", 40, 4.5),
	}}

	got := domain.SimilarItems(cat, "h1", 10)
	require.Equal(t, []string{"h2", "h3", "h4"}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i].Rating, got[i-1].Rating)
	}

	assert.Equal(t, []string{"h2", "h3"}, ids(domain.SimilarItems(cat, "h1", 2)))
	assert.Empty(t, domain.SimilarItems(cat, "missing", 5))
}

func TestNearbyItems_WithinRadiusAscending(t *testing.T) {
	at := func(id string, lon, lat float64) domain.Item {
		it := hostel(id, 10, 4)
		it.Coords = domain.Coords{Lon: lon, Lat: lat}
		return it
	}
	cat := &fakeCatalog{items: []domain.Item{
		at("ref", 74.6, 42.9),
		at("near", 74.7, 42.9), // ~8 km
		at("mid", 75.2, 42.9),  // ~49 km
		at("far", 78.4, 42.5),  // ~300 km
	}}

	got := domain.NearbyItems(cat, "ref", 100, 10)
	require.Equal(t, []string{"near", "mid"}, ids(got))

	ref, _ := cat.ByID("ref")
	last := 0.0
	for _, it := range got {
		d := domain.Haversine(ref.Coords, it.Coords)
		assert.LessOrEqual(t, d, 100.0)
		assert.GreaterOrEqual(t, d, last)
		last = d
	}

	assert.Equal(t, []string{"near"}, ids(domain.NearbyItems(cat, "ref", 100, 1)))
	assert.Empty(t, domain.NearbyItems(cat, "ref", 0.1, 10))
}

func TestHaversine_KnownDistance(t *testing.T) {
	bishkek := domain.Coords{Lon: 74.59, Lat: 42.874}
	osh := domain.Coords{Lon: 72.802, Lat: 40.514}

	d := domain.Haversine(bishkek, osh)
	// straight-line Bishkek-Osh is roughly 300 km
	assert.InDelta(t, 300, d, 15)
	assert.Zero(t, domain.Haversine(bishkek, bishkek))
}

func TestSearchDestinations(t *testing.T) {
	dests := []domain.Destination{
		{ID: "d1", Name: "Karakol", Description: "trekking hub", Region: "Issyk-Kul"},
		{ID: "d2", Name: "Osh", Description: "southern city", Region: "Osh"},
	}

	assert.Len(t, domain.SearchDestinations("kara", dests), 1)
	assert.Len(t, domain.SearchDestinations("issyk", dests), 1)
	assert.Len(t, domain.SearchDestinations("city", dests), 1)
	assert.Empty(t, domain.SearchDestinations("naryn", dests))
}

// The worked scenario from the product notes: one free hostel and two paid
// ones with different ratings.
func TestScenario_FreeBucketAndSimilar(t *testing.T) {
	h1 := hostel("h1", 0, 4.0)
	h2 := hostel("h2", 30, 4.6)
	h3 := hostel("h3", 30, 4.2)
	cat := &fakeCatalog{items: []domain.Item{h1, h2, h3}}

	byType := domain.FilterType(domain.TypeHostel, cat.All())
	assert.Equal(t, []string{"h1"}, ids(domain.FilterBudget("free", byType)))

	assert.Equal(t, []string{"h3", "h1"}, ids(domain.SimilarItems(cat, "h2", 5)))
}
