package mapbox

import (
	"strings"

	"travelers/internal/domain"
)

// Marker colors per item kind, fixed by the design system.
const (
	colorHostel = "#3b82f6"
	colorTour   = "#10b981"
	colorPlace  = "#f59e0b"
)

// Default viewport when there is nothing to show: Bishkek.
var defaultCenter = domain.Coords{Lon: 74.6, Lat: 42.9}

const (
	defaultZoom    = 6
	singleItemZoom = 12
	fitPadding     = 50
	fitMaxZoom     = 10
)

type Marker struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Location string        `json:"location"`
	Price    float64       `json:"price"`
	Coords   domain.Coords `json:"coordinates"`
	Color    string        `json:"color"`
	Selected bool          `json:"selected"`
}

// Viewport tells the renderer how to frame the markers: either a fixed
// center+zoom, or a bounding box to fit with padding and a zoom cap.
type Viewport struct {
	Center  *domain.Coords `json:"center,omitempty"`
	Zoom    int            `json:"zoom,omitempty"`
	Bounds  *Bounds        `json:"bounds,omitempty"`
	Padding int            `json:"padding,omitempty"`
	MaxZoom int            `json:"maxZoom,omitempty"`
}

type Bounds struct {
	SouthWest domain.Coords `json:"southWest"`
	NorthEast domain.Coords `json:"northEast"`
}

type LegendEntry struct {
	Type  domain.ItemType `json:"type"`
	Color string          `json:"color"`
	Label string          `json:"label"`
}

// View is everything the map renderer needs. When Enabled is false the
// renderer must fall back to the legend-only placeholder and show Message;
// the legend is always present so the fallback still has content.
type View struct {
	Enabled  bool          `json:"enabled"`
	Message  string        `json:"message,omitempty"`
	Markers  []Marker      `json:"markers"`
	Viewport Viewport      `json:"viewport"`
	Legend   []LegendEntry `json:"legend"`
}

// Capability reports whether the map can render with the given access token.
// Empty, placeholder, or implausibly short tokens degrade to the legend-only
// fallback instead of letting the renderer crash.
func Capability(token string) (bool, string) {
	switch {
	case token == "":
		return false, "map access token not configured"
	case strings.Contains(token, "your_mapbox_token"):
		return false, "map access token is a placeholder"
	case len(token) < 20:
		return false, "map access token looks malformed"
	}
	return true, ""
}

func markerColor(t domain.ItemType) string {
	switch t {
	case domain.TypeHostel:
		return colorHostel
	case domain.TypeTour:
		return colorTour
	case domain.TypePlace:
		return colorPlace
	}
	return colorPlace
}

func Legend() []LegendEntry {
	return []LegendEntry{
		{Type: domain.TypeHostel, Color: colorHostel, Label: "Hostels"},
		{Type: domain.TypeTour, Color: colorTour, Label: "Tours"},
		{Type: domain.TypePlace, Color: colorPlace, Label: "Places"},
	}
}

// BuildView computes the render model for a set of items. selectedID marks
// at most one marker. enabled/message come from Capability (possibly refined
// by a token probe at startup).
func BuildView(items []domain.ItemView, selectedID string, enabled bool, message string) View {
	v := View{
		Enabled: enabled,
		Message: message,
		Markers: make([]Marker, 0, len(items)),
		Legend:  Legend(),
	}
	for _, it := range items {
		v.Markers = append(v.Markers, Marker{
			ID:       it.ID,
			Name:     it.Name,
			Location: it.Location,
			Price:    it.Price,
			Coords:   it.Coords,
			Color:    markerColor(it.Type),
			Selected: it.ID == selectedID,
		})
	}
	v.Viewport = fitViewport(items)
	return v
}

func fitViewport(items []domain.ItemView) Viewport {
	switch len(items) {
	case 0:
		c := defaultCenter
		return Viewport{Center: &c, Zoom: defaultZoom}
	case 1:
		c := items[0].Coords
		return Viewport{Center: &c, Zoom: singleItemZoom}
	}
	b := Bounds{SouthWest: items[0].Coords, NorthEast: items[0].Coords}
	for _, it := range items[1:] {
		if it.Coords.Lon < b.SouthWest.Lon {
			b.SouthWest.Lon = it.Coords.Lon
		}
		if it.Coords.Lat < b.SouthWest.Lat {
			b.SouthWest.Lat = it.Coords.Lat
		}
		if it.Coords.Lon > b.NorthEast.Lon {
			b.NorthEast.Lon = it.Coords.Lon
		}
		if it.Coords.Lat > b.NorthEast.Lat {
			b.NorthEast.Lat = it.Coords.Lat
		}
	}
	return Viewport{Bounds: &b, Padding: fitPadding, MaxZoom: fitMaxZoom}
}
