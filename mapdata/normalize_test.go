package mapdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNestedLocation(t *testing.T) {
	pins := Normalize([]map[string]any{
		{"location": map[string]any{"lat": 40.7, "lon": -74.0}, "title": "HQ"},
	})

	require.Len(t, pins, 1)
	require.True(t, pins[0].HasCoordinates())
	assert.Equal(t, 40.7, *pins[0].Lat)
	assert.Equal(t, -74.0, *pins[0].Lon)
	assert.Equal(t, "HQ", pins[0].Title)
}

func TestNormalizeFlatKeyAliases(t *testing.T) {
	tests := []struct {
		name string
		obj  map[string]any
	}{
		{"lon", map[string]any{"lat": 1.0, "lon": 2.0}},
		{"lng", map[string]any{"lat": 1.0, "lng": 2.0}},
		{"longitude", map[string]any{"lat": 1.0, "longitude": 2.0}},
		{"string values", map[string]any{"lat": "1.0", "lng": "2.0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pins := Normalize([]map[string]any{tt.obj})
			require.Len(t, pins, 1)
			require.True(t, pins[0].HasCoordinates())
			assert.Equal(t, 1.0, *pins[0].Lat)
			assert.Equal(t, 2.0, *pins[0].Lon)
		})
	}
}

func TestNormalizeZeroIsValidCoordinate(t *testing.T) {
	pins := Normalize([]map[string]any{{"lat": 0.0, "lon": 0.0}})
	require.Len(t, pins, 1)
	assert.True(t, pins[0].HasCoordinates())
}

func TestNormalizeMisspelledLabelWins(t *testing.T) {
	pins := Normalize([]map[string]any{
		{"lable": "3", "label": "ignored"},
		{"label": "7"},
	})

	require.Len(t, pins, 2)
	assert.Equal(t, "3", pins[0].Label)
	assert.Equal(t, "7", pins[1].Label)
}

func TestNormalizeKeepsCoordinatelessPins(t *testing.T) {
	pins := Normalize([]map[string]any{
		{"lat": 5.0},
		{"title": "no coords at all"},
		{"lat": "not-a-number", "lon": 3.0},
	})

	require.Len(t, pins, 3)
	assert.False(t, pins[0].HasCoordinates())
	assert.Nil(t, pins[0].Lon)
	assert.False(t, pins[1].HasCoordinates())
	assert.False(t, pins[2].HasCoordinates())
	assert.Equal(t, 0, UsableCount(pins))
}

func TestNormalizeURLDerivedFields(t *testing.T) {
	url := "/analytics/GetResults?search_guid=123e4567-e89b-12d3-a456-426614174000&pid=ChIJabcdefg&cid=9876"
	pins := Normalize([]map[string]any{{"lat": 1.0, "lon": 2.0, "url": url, "color": "#ff0000"}})

	require.Len(t, pins, 1)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", pins[0].SearchGUID)
	assert.Equal(t, "ChIJabcdefg", pins[0].PID)
	assert.Equal(t, "9876", pins[0].CID)
	assert.Equal(t, "#ff0000", pins[0].Color)
}

func TestUsableCount(t *testing.T) {
	pins := Normalize([]map[string]any{
		{"lat": 1.0, "lon": 2.0},
		{"lat": 1.0},
		{"lat": 3.0, "lng": 4.0},
	})
	assert.Equal(t, 2, UsableCount(pins))
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Empty(t, Normalize(nil))
}
