package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCoordsStrategies(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLat float64
		wantLon float64
	}{
		{
			"prose phrasing",
			`<p>Your business was found at 40.7128, -74.0060 during this scan.</p>`,
			40.7128, -74.0060,
		},
		{
			"LatLng constructor",
			`var center = new google.maps.LatLng(51.5, -0.12);`,
			51.5, -0.12,
		},
		{
			"center object literal",
			`var opts = { zoom: 12, center: { lat: 48.85, lng: 2.35 } };`,
			48.85, 2.35,
		},
		{
			"data attributes",
			`<div data-lat="35.68" data-lng="139.69"></div>`,
			35.68, 139.69,
		},
		{
			"data attributes reversed",
			`<div data-lng="139.69" data-lat="35.68"></div>`,
			35.68, 139.69,
		},
		{
			"var statement pair",
			`var lat = -33.87; var other = 1; var lng = 151.21;`,
			-33.87, 151.21,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, ok := ExtractCoords(tt.body)
			require.True(t, ok)
			assert.Equal(t, tt.wantLat, lat)
			assert.Equal(t, tt.wantLon, lon)
		})
	}
}

func TestExtractCoordsProseWinsOverLaterStrategies(t *testing.T) {
	body := `located at 10.5, 20.5
new google.maps.LatLng(1.0, 2.0)
<div data-lat="3.0" data-lng="4.0"></div>`

	lat, lon, ok := ExtractCoords(body)
	require.True(t, ok)
	assert.Equal(t, 10.5, lat)
	assert.Equal(t, 20.5, lon)
}

func TestExtractCoordsVarPairWindow(t *testing.T) {
	// The lng statement sits well past the proximity window, so the pair
	// is not trusted.
	filler := make([]byte, 600)
	for i := range filler {
		filler[i] = 'x'
	}
	_, _, ok := ExtractCoords(`var lat = 1.5; ` + string(filler) + ` var lng = 2.5;`)
	assert.False(t, ok)
}

func TestExtractCoordsNoMatch(t *testing.T) {
	_, _, ok := ExtractCoords(`<html><body>nothing geographic</body></html>`)
	assert.False(t, ok)

	// An unpaired data attribute is not enough.
	_, _, ok = ExtractCoords(`<div data-lat="35.68"></div>`)
	assert.False(t, ok)
}
