package jsdata

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// Identifiers are the two scalar values extracted once per document. Either
// may be empty when unresolved.
type Identifiers struct {
	ScanGUID string `json:"scan_guid"`
	PlaceID  string `json:"place_id"`
}

const uuidPattern = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

var (
	scanGUIDAssignRe = regexp.MustCompile(`scan_guid['"]?\s*[:=]\s*['"](` + uuidPattern + `)['"]`)
	scanGUIDPathRe   = regexp.MustCompile(`/scans/(?:get-competitors-list\?scan_guid=|compare\?scan=)(` + uuidPattern + `)`)
	placeIDAssignRe  = regexp.MustCompile(`place_id['"]?\s*[:=]\s*['"]([^'"]{5,200})['"]`)
	placeIDParamRe   = regexp.MustCompile(`/analytics/[^"'\s<>]*?[?&]pid=([^&"'\s<>]+)`)
	placeIDBizRe     = regexp.MustCompile(`/scans/compare\?[^"'\s<>]*?biz[12]=([^&"'\s<>]+)`)
	alnumRe          = regexp.MustCompile(`[A-Za-z0-9]`)
)

// ExtractIdentifiers pulls scan_guid and place_id out of the document.
func ExtractIdentifiers(doc *goquery.Document) Identifiers {
	return Identifiers{
		ScanGUID: ExtractScanGUID(doc),
		PlaceID:  ExtractPlaceID(doc),
	}
}

// ExtractScanGUID searches script text for a scan_guid assignment carrying a
// UUID-shaped value. A same-length token that doesn't validate as a UUID is
// rejected, which sends the search to the endpoint-path fallback over the
// whole document.
func ExtractScanGUID(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}

	guid := ""
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, m := range scanGUIDAssignRe.FindAllStringSubmatch(s.Text(), -1) {
			if _, err := uuid.Parse(m[1]); err == nil {
				guid = m[1]
				return false
			}
		}
		return true
	})
	if guid != "" {
		return guid
	}

	text, ok := documentText(doc)
	if !ok {
		return ""
	}
	for _, m := range scanGUIDPathRe.FindAllStringSubmatch(text, -1) {
		if _, err := uuid.Parse(m[1]); err == nil {
			return m[1]
		}
	}
	return ""
}

// ExtractPlaceID searches script text for a place_id assignment, falling
// back to pid= or biz1=/biz2= parameters on the secondary endpoints.
func ExtractPlaceID(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}

	id := ""
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, m := range placeIDAssignRe.FindAllStringSubmatch(s.Text(), -1) {
			if plausiblePlaceID(m[1]) {
				id = m[1]
				return false
			}
		}
		return true
	})
	if id != "" {
		return id
	}

	text, ok := documentText(doc)
	if !ok {
		return ""
	}
	for _, re := range []*regexp.Regexp{placeIDParamRe, placeIDBizRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if plausiblePlaceID(m[1]) {
				return m[1]
			}
		}
	}
	return ""
}

// plausiblePlaceID rejects accidentally-captured code fragments: control
// characters and braces never appear in real place identifiers.
func plausiblePlaceID(s string) bool {
	if len(s) < 5 || len(s) > 200 {
		return false
	}
	if strings.ContainsAny(s, "{}") {
		return false
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return alnumRe.MatchString(s)
}
