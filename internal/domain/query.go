package domain

import (
	"sort"
	"strings"
)

// Filter is the explore-page selection. "all" (or "" for Search) disables
// the corresponding predicate; the remaining predicates combine with AND.
type Filter struct {
	Search string `json:"search"`
	Type   string `json:"type"`
	Region string `json:"region"`
	Budget string `json:"budget"`
	Rating string `json:"rating"`
}

// Search returns items whose name, location or description contains query,
// case-insensitively. Input order is preserved; there is no relevance
// ranking. Callers must skip the call for an empty query: in the filter
// composition an empty search means "match everything", not "match nothing".
func Search(query string, items []Item) []Item {
	q := strings.ToLower(query)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.Location), q) ||
			strings.Contains(strings.ToLower(it.Description), q) {
			out = append(out, it)
		}
	}
	return out
}

func FilterType(t ItemType, items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Type() == t {
			out = append(out, it)
		}
	}
	return out
}

func FilterRegion(region string, items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Region == region {
			out = append(out, it)
		}
	}
	return out
}

func FilterRating(min float64, items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Rating >= min {
			out = append(out, it)
		}
	}
	return out
}

// budgetBuckets maps the named price ranges. Numeric buckets are inclusive
// on both ends, so a boundary price (25, 50, 100) appears in both adjoining
// buckets; this overlap is intentional and covered by a test.
var budgetBuckets = map[string][2]float64{
	"0-25":   {0, 25},
	"25-50":  {25, 50},
	"50-100": {50, 100},
}

// FilterBudget keeps items in the named budget bucket. Free items
// (price == 0) match only "free", and "free" matches only free items; the
// top bucket "100+" is open-ended. Unknown bucket names match nothing.
func FilterBudget(bucket string, items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		switch {
		case it.Free():
			if bucket == "free" {
				out = append(out, it)
			}
		case bucket == "free":
			// non-free item can never be in the free bucket
		case bucket == "100+":
			if it.Price >= 100 {
				out = append(out, it)
			}
		default:
			if r, ok := budgetBuckets[bucket]; ok && it.Price >= r[0] && it.Price <= r[1] {
				out = append(out, it)
			}
		}
	}
	return out
}

// ApplyFilter runs the AND composition in the fixed order
// search -> type -> region -> budget -> rating.
func ApplyFilter(f Filter, items []Item) []Item {
	out := items
	if f.Search != "" {
		out = Search(f.Search, out)
	}
	if f.Type != "" && f.Type != "all" {
		out = FilterType(ItemType(f.Type), out)
	}
	if f.Region != "" && f.Region != "all" {
		out = FilterRegion(f.Region, out)
	}
	if f.Budget != "" && f.Budget != "all" {
		out = FilterBudget(f.Budget, out)
	}
	if f.Rating != "" && f.Rating != "all" {
		if min, ok := parseRating(f.Rating); ok {
			out = FilterRating(min, out)
		}
	}
	return out
}

func parseRating(s string) (float64, bool) {
	switch s {
	case "3.5":
		return 3.5, true
	case "4.0":
		return 4.0, true
	case "4.5":
		return 4.5, true
	}
	return 0, false
}

// SimilarItems returns up to limit items of the same kind as the reference,
// excluding the reference itself, best-rated first. Equal ratings keep
// catalog order (stable sort).
func SimilarItems(c CatalogRepository, id string, limit int) []Item {
	ref, ok := c.ByID(id)
	if !ok {
		return nil
	}
	out := make([]Item, 0)
	for _, it := range c.All() {
		if it.ID != id && it.Type() == ref.Type() {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return truncate(out, limit)
}

// NearbyItems returns up to limit items within radiusKm of the reference
// (great-circle distance), closest first. Equal distances keep catalog
// order. The reference itself is excluded.
func NearbyItems(c CatalogRepository, id string, radiusKm float64, limit int) []Item {
	ref, ok := c.ByID(id)
	if !ok {
		return nil
	}
	type withDist struct {
		item Item
		dist float64
	}
	near := make([]withDist, 0)
	for _, it := range c.All() {
		if it.ID == id {
			continue
		}
		if d := Haversine(ref.Coords, it.Coords); d <= radiusKm {
			near = append(near, withDist{it, d})
		}
	}
	sort.SliceStable(near, func(i, j int) bool { return near[i].dist < near[j].dist })
	out := make([]Item, 0, len(near))
	for _, n := range near {
		out = append(out, n.item)
	}
	return truncate(out, limit)
}

// SearchDestinations applies the Search substring contract to destinations
// over name, description and region.
func SearchDestinations(query string, dests []Destination) []Destination {
	q := strings.ToLower(query)
	out := make([]Destination, 0, len(dests))
	for _, d := range dests {
		if strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Description), q) ||
			strings.Contains(strings.ToLower(d.Region), q) {
			out = append(out, d)
		}
	}
	return out
}

func truncate(items []Item, limit int) []Item {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
