package domain

// Review belongs to exactly one Item; reviews are never shared or updated.
type Review struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Rating  int    `json:"rating"` // 1..5
	Comment string `json:"comment"`
	Date    string `json:"date"`
}

// Destination backs the home-page search suggestions; it is independent of
// the bookable catalog.
type Destination struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Region      string `json:"region"`
	Coords      Coords `json:"coordinates"`
}

type Testimonial struct {
	ID       string  `json:"id"`
	Author   string  `json:"author"`
	Location string  `json:"location"`
	Rating   float64 `json:"rating"`
	Text     string  `json:"text"`
	Avatar   string  `json:"avatar"`
	TripType string  `json:"tripType"`
}
