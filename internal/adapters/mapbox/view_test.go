package mapbox_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelers/internal/adapters/mapbox"
	"travelers/internal/domain"
)

func view(id string, t domain.ItemType, lon, lat float64) domain.ItemView {
	return domain.ItemView{ID: id, Type: t, Name: id, Coords: domain.Coords{Lon: lon, Lat: lat}}
}

func TestCapability(t *testing.T) {
	cases := []struct {
		token string
		ok    bool
	}{
		{"", false},
		{"your_mapbox_token_here_but_long_enough", false},
		{"pk.short", false},
		{"pk.eyJhbGciOiJIUzI1NiJ9.valid-looking-token", true},
	}
	for _, c := range cases {
		ok, reason := mapbox.Capability(c.token)
		assert.Equal(t, c.ok, ok, c.token)
		if !ok {
			assert.NotEmpty(t, reason, c.token)
		}
	}
}

func TestBuildView_MarkerColorsByKind(t *testing.T) {
	items := []domain.ItemView{
		view("h", domain.TypeHostel, 74.6, 42.9),
		view("t", domain.TypeTour, 78.4, 42.5),
		view("p", domain.TypePlace, 72.8, 40.5),
	}

	v := mapbox.BuildView(items, "t", true, "")
	require.Len(t, v.Markers, 3)
	assert.Equal(t, "#3b82f6", v.Markers[0].Color)
	assert.Equal(t, "#10b981", v.Markers[1].Color)
	assert.Equal(t, "#f59e0b", v.Markers[2].Color)

	assert.False(t, v.Markers[0].Selected)
	assert.True(t, v.Markers[1].Selected)
}

func TestBuildView_SingleItemCentersFixedZoom(t *testing.T) {
	v := mapbox.BuildView([]domain.ItemView{view("h", domain.TypeHostel, 74.6, 42.9)}, "", true, "")

	require.NotNil(t, v.Viewport.Center)
	assert.Equal(t, 74.6, v.Viewport.Center.Lon)
	assert.Equal(t, 12, v.Viewport.Zoom)
	assert.Nil(t, v.Viewport.Bounds)
}

func TestBuildView_MultipleItemsFitBounds(t *testing.T) {
	items := []domain.ItemView{
		view("a", domain.TypeHostel, 74.6, 42.9),
		view("b", domain.TypeTour, 78.4, 42.5),
		view("c", domain.TypePlace, 72.8, 40.5),
	}

	v := mapbox.BuildView(items, "", true, "")
	require.NotNil(t, v.Viewport.Bounds)
	assert.Equal(t, 72.8, v.Viewport.Bounds.SouthWest.Lon)
	assert.Equal(t, 40.5, v.Viewport.Bounds.SouthWest.Lat)
	assert.Equal(t, 78.4, v.Viewport.Bounds.NorthEast.Lon)
	assert.Equal(t, 42.9, v.Viewport.Bounds.NorthEast.Lat)
	assert.Equal(t, 50, v.Viewport.Padding)
	assert.Equal(t, 10, v.Viewport.MaxZoom)
}

func TestBuildView_EmptyDefaultsToBishkek(t *testing.T) {
	v := mapbox.BuildView(nil, "", true, "")

	require.NotNil(t, v.Viewport.Center)
	assert.Equal(t, 74.6, v.Viewport.Center.Lon)
	assert.Equal(t, 6, v.Viewport.Zoom)
}

// Degraded views still carry the full legend so the placeholder has content.
func TestBuildView_DegradedKeepsLegend(t *testing.T) {
	v := mapbox.BuildView(nil, "", false, "map access token not configured")

	assert.False(t, v.Enabled)
	assert.True(t, strings.Contains(v.Message, "token"))
	require.Len(t, v.Legend, 3)
	assert.Equal(t, domain.TypeHostel, v.Legend[0].Type)
}
