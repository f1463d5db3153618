// Package mapdata normalizes raw pinz records into a single pin schema.
package mapdata

import (
	"encoding/json"
	"regexp"
	"strconv"

	"rankscraper/report"
)

var (
	searchGUIDRe = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	pidParamRe   = regexp.MustCompile(`[?&]pid=([^&"'\s]+)`)
)

// Pin is one normalized map marker. Latitude and longitude are nil, not
// zero, when unrecoverable: zero is a legitimate coordinate.
type Pin struct {
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	Label      string   `json:"label"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Color      string   `json:"color"`
	CID        string   `json:"cid"`
	SearchGUID string   `json:"search_guid"`
	PID        string   `json:"pid"`
}

// HasCoordinates reports whether both coordinates were recovered.
func (p Pin) HasCoordinates() bool {
	return p.Lat != nil && p.Lon != nil
}

// Normalize maps each dict-shaped pinz element to a Pin. Pins without
// coordinates are kept so callers can count them; source order is preserved.
func Normalize(raw []map[string]any) []Pin {
	var pins []Pin
	for _, obj := range raw {
		pins = append(pins, normalizeOne(obj))
	}
	return pins
}

// UsableCount returns how many pins carry both coordinates.
func UsableCount(pins []Pin) int {
	n := 0
	for _, p := range pins {
		if p.HasCoordinates() {
			n++
		}
	}
	return n
}

func normalizeOne(obj map[string]any) Pin {
	location, _ := obj["location"].(map[string]any)

	pin := Pin{
		Lat:   firstNumber(location, obj, "lat"),
		Lon:   firstNumber(location, obj, "lon", "lng", "longitude"),
		Title: stringValue(obj["title"]),
		URL:   stringValue(obj["url"]),
		Color: stringValue(obj["color"]),
	}

	// The template misspells "label" as "lable" in most revisions; check
	// the misspelling first, same as the page's own consumers do.
	pin.Label = stringValue(obj["lable"])
	if pin.Label == "" {
		pin.Label = stringValue(obj["label"])
	}

	pin.CID = report.ExtractCID(pin.URL)
	if m := searchGUIDRe.FindString(pin.URL); m != "" {
		pin.SearchGUID = m
	}
	if m := pidParamRe.FindStringSubmatch(pin.URL); m != nil {
		pin.PID = m[1]
	}
	return pin
}

// firstNumber resolves a coordinate from the nested location object first,
// then from the flat keys in order.
func firstNumber(location, obj map[string]any, keys ...string) *float64 {
	if location != nil {
		if v, ok := toFloat(location[keys[0]]); ok {
			return &v
		}
	}
	for _, key := range keys {
		if v, ok := toFloat(obj[key]); ok {
			return &v
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
