package static

import (
	"embed"
	"encoding/json"
	"fmt"

	"travelers/internal/domain"
)

//go:embed data/*.json
var dataFS embed.FS

// Catalog holds the immutable item collections. Load builds it once at
// process start; there are no mutation paths.
type Catalog struct {
	items        []domain.Item
	byID         map[string]domain.Item
	regions      []string
	destinations []domain.Destination
	testimonials []domain.Testimonial
}

// source-file record shapes (flat, matching the JSON data files)

type commonRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Location    string          `json:"location"`
	Coords      domain.Coords   `json:"coordinates"`
	Region      string          `json:"region"`
	Price       float64         `json:"price"`
	Currency    string          `json:"currency"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"reviewCount"`
	Reviews     []domain.Review `json:"reviews"`
}

type hostelRecord struct {
	commonRecord
	Amenities []string `json:"amenities"`
}

type tourRecord struct {
	commonRecord
	Duration  string   `json:"duration"`
	Organizer string   `json:"organizer"`
	Includes  []string `json:"includes"`
}

type placeRecord struct {
	commonRecord
	Category string `json:"category"`
}

// Load decodes the embedded collections and merges them into one catalog:
// hostels, then tours, then places, each in source order.
func Load() (*Catalog, error) {
	var (
		hostels []hostelRecord
		tours   []tourRecord
		places  []placeRecord
	)
	if err := decode("data/hostels.json", &hostels); err != nil {
		return nil, err
	}
	if err := decode("data/tours.json", &tours); err != nil {
		return nil, err
	}
	if err := decode("data/places.json", &places); err != nil {
		return nil, err
	}

	c := &Catalog{byID: map[string]domain.Item{}}
	for _, r := range hostels {
		c.add(item(r.commonRecord, domain.HostelDetails{
			Amenities: domain.ClassifyFeatures(r.Amenities),
		}))
	}
	for _, r := range tours {
		c.add(item(r.commonRecord, domain.TourDetails{
			Duration:  r.Duration,
			Organizer: r.Organizer,
			Includes:  domain.ClassifyFeatures(r.Includes),
		}))
	}
	for _, r := range places {
		c.add(item(r.commonRecord, domain.PlaceDetails{Category: r.Category}))
	}

	if err := decode("data/destinations.json", &c.destinations); err != nil {
		return nil, err
	}
	if err := decode("data/testimonials.json", &c.testimonials); err != nil {
		return nil, err
	}
	return c, nil
}

func decode(name string, dst any) error {
	b, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func item(r commonRecord, d domain.ItemDetails) domain.Item {
	return domain.Item{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Images:      r.Images,
		Location:    r.Location,
		Coords:      r.Coords,
		Region:      r.Region,
		Price:       r.Price,
		Currency:    r.Currency,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		Reviews:     r.Reviews,
		Details:     d,
	}
}

func (c *Catalog) add(it domain.Item) {
	c.items = append(c.items, it)
	c.byID[it.ID] = it
	for _, r := range c.regions {
		if r == it.Region {
			return
		}
	}
	c.regions = append(c.regions, it.Region)
}

func (c *Catalog) All() []domain.Item { return c.items }

func (c *Catalog) ByID(id string) (domain.Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Regions returns the distinct region labels in first-seen order.
func (c *Catalog) Regions() []string { return c.regions }

func (c *Catalog) Destinations() []domain.Destination { return c.destinations }

func (c *Catalog) Testimonials() []domain.Testimonial { return c.testimonials }
