package domain

// TripItem is a denormalized snapshot of a catalog item taken when it was
// added to the trip. Name and price are frozen at add time; the id is not
// validated against the catalog. The cart keeps insertion order and allows
// the same id to appear more than once.
type TripItem struct {
	ID       string   `json:"id"`
	Type     ItemType `json:"type"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency"`
	Date     string   `json:"date,omitempty"`
}

// TripSnapshot builds the cart entry for an item.
func TripSnapshot(it Item) TripItem {
	return TripItem{
		ID:       it.ID,
		Type:     it.Type(),
		Name:     it.Name,
		Price:    it.Price,
		Currency: it.Currency,
	}
}
