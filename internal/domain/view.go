package domain

// ItemView is the flat read model served over HTTP. Kind-specific fields are
// only set for the matching kind (omitempty keeps the payload honest).
type ItemView struct {
	ID          string   `json:"id"`
	Type        ItemType `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Location    string   `json:"location"`
	Coords      Coords   `json:"coordinates"`
	Region      string   `json:"region"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`

	Amenities []Feature `json:"amenities,omitempty"`
	Duration  string    `json:"duration,omitempty"`
	Organizer string    `json:"organizer,omitempty"`
	Includes  []Feature `json:"includes,omitempty"`
	Category  string    `json:"category,omitempty"`
}

func NewItemView(it Item) ItemView {
	v := ItemView{
		ID:          it.ID,
		Type:        it.Type(),
		Name:        it.Name,
		Description: it.Description,
		Images:      it.Images,
		Location:    it.Location,
		Coords:      it.Coords,
		Region:      it.Region,
		Price:       it.Price,
		Currency:    it.Currency,
		Rating:      it.Rating,
		ReviewCount: it.ReviewCount,
	}
	switch d := it.Details.(type) {
	case HostelDetails:
		v.Amenities = d.Amenities
	case TourDetails:
		v.Duration = d.Duration
		v.Organizer = d.Organizer
		v.Includes = d.Includes
	case PlaceDetails:
		v.Category = d.Category
	}
	return v
}

func NewItemViews(items []Item) []ItemView {
	out := make([]ItemView, len(items))
	for i, it := range items {
		out[i] = NewItemView(it)
	}
	return out
}
