package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Coords is a longitude/latitude pair. The JSON form is a two-element
// [lon, lat] array, matching the catalog source files.
type Coords struct {
	Lon float64
	Lat float64
}

func (c Coords) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lon, c.Lat})
}

func (c *Coords) UnmarshalJSON(b []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("coordinates must be a [lon, lat] pair: %w", err)
	}
	c.Lon, c.Lat = pair[0], pair[1]
	return nil
}

const earthRadiusKm = 6371

// Haversine returns the great-circle distance between two coordinates in km.
func Haversine(a, b Coords) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
