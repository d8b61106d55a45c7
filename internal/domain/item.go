package domain

type ItemType string

const (
	TypeHostel ItemType = "hostel"
	TypeTour   ItemType = "tour"
	TypePlace  ItemType = "place"
)

// ItemDetails is the kind-specific half of an Item. It is sealed: only the
// three detail structs below implement it, so a switch over Item.Type() with
// all three cases covers every catalog entry.
type ItemDetails interface {
	itemType() ItemType
}

type HostelDetails struct {
	Amenities []Feature `json:"amenities"`
}

type TourDetails struct {
	Duration  string    `json:"duration"`
	Organizer string    `json:"organizer"`
	Includes  []Feature `json:"includes"`
}

type PlaceDetails struct {
	Category string `json:"category"`
}

func (HostelDetails) itemType() ItemType { return TypeHostel }
func (TourDetails) itemType() ItemType   { return TypeTour }
func (PlaceDetails) itemType() ItemType  { return TypePlace }

// Item is one bookable/viewable catalog entry. Items are loaded once at
// startup and never mutated afterwards; a price of 0 means "free".
type Item struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Images      []string    `json:"images"`
	Location    string      `json:"location"`
	Coords      Coords      `json:"coordinates"`
	Region      string      `json:"region"`
	Price       float64     `json:"price"`
	Currency    string      `json:"currency"`
	Rating      float64     `json:"rating"`
	ReviewCount int         `json:"reviewCount"`
	Reviews     []Review    `json:"reviews"`
	Details     ItemDetails `json:"details"`
}

// Type derives the kind tag from the details; the tag is immutable because
// Details is set once at load time.
func (i Item) Type() ItemType { return i.Details.itemType() }

func (i Item) Free() bool { return i.Price == 0 }
