package analytics

import (
	"regexp"
	"strconv"
)

// varPairWindow bounds how far apart the var lat / var lng statements may
// sit in strategy 5.
const varPairWindow = 400

var (
	prosePairRe  = regexp.MustCompile(`(?i)\bat\s+(-?\d+\.\d+)\s*,\s*(-?\d+\.\d+)`)
	latLngCtorRe = regexp.MustCompile(`LatLng\(\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*\)`)
	centerObjRe  = regexp.MustCompile(`(?s)center\s*:\s*\{\s*lat\s*:\s*(-?\d+(?:\.\d+)?)\s*,\s*lng\s*:\s*(-?\d+(?:\.\d+)?)`)
	dataLatRe    = regexp.MustCompile(`data-lat\s*=\s*["'](-?\d+(?:\.\d+)?)["']`)
	dataLngRe    = regexp.MustCompile(`data-lng\s*=\s*["'](-?\d+(?:\.\d+)?)["']`)
	varLatRe     = regexp.MustCompile(`var\s+lat\s*=\s*(-?\d+(?:\.\d+)?)`)
	varLngRe     = regexp.MustCompile(`var\s+lng\s*=\s*(-?\d+(?:\.\d+)?)`)
)

// coordStrategy attempts one lat/lon recovery heuristic against response
// text.
type coordStrategy func(body string) (float64, float64, bool)

// coordStrategies run in order; the first match wins per response. Each is
// independent so a miss in one never hides a hit in the next.
var coordStrategies = []coordStrategy{
	coordsFromProse,
	coordsFromLatLngCtor,
	coordsFromCenterObject,
	coordsFromDataAttrs,
	coordsFromVarPair,
}

// ExtractCoords mines arbitrary response HTML for a latitude/longitude pair.
func ExtractCoords(body string) (float64, float64, bool) {
	for _, strategy := range coordStrategies {
		if lat, lon, ok := strategy(body); ok {
			return lat, lon, true
		}
	}
	return 0, 0, false
}

// coordsFromProse matches phrasing like "located at 40.7128, -74.0060".
func coordsFromProse(body string) (float64, float64, bool) {
	return pairFromMatch(prosePairRe.FindStringSubmatch(body))
}

// coordsFromLatLngCtor matches a LatLng(lat, lon) constructor call.
func coordsFromLatLngCtor(body string) (float64, float64, bool) {
	return pairFromMatch(latLngCtorRe.FindStringSubmatch(body))
}

// coordsFromCenterObject matches a center: { lat: ..., lng: ... } literal.
func coordsFromCenterObject(body string) (float64, float64, bool) {
	return pairFromMatch(centerObjRe.FindStringSubmatch(body))
}

// coordsFromDataAttrs matches paired data-lat/data-lng attributes in either
// order.
func coordsFromDataAttrs(body string) (float64, float64, bool) {
	latM := dataLatRe.FindStringSubmatch(body)
	lngM := dataLngRe.FindStringSubmatch(body)
	if latM == nil || lngM == nil {
		return 0, 0, false
	}
	return parsePair(latM[1], lngM[1])
}

// coordsFromVarPair matches nearby var lat = ... / var lng = ... statements.
func coordsFromVarPair(body string) (float64, float64, bool) {
	latLoc := varLatRe.FindStringSubmatchIndex(body)
	if latLoc == nil {
		return 0, 0, false
	}
	start := latLoc[0] - varPairWindow
	if start < 0 {
		start = 0
	}
	end := latLoc[1] + varPairWindow
	if end > len(body) {
		end = len(body)
	}
	lngM := varLngRe.FindStringSubmatch(body[start:end])
	if lngM == nil {
		return 0, 0, false
	}
	return parsePair(body[latLoc[2]:latLoc[3]], lngM[1])
}

func pairFromMatch(m []string) (float64, float64, bool) {
	if m == nil {
		return 0, 0, false
	}
	return parsePair(m[1], m[2])
}

func parsePair(latStr, lonStr string) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
