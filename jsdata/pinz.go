package jsdata

import (
	"encoding/base64"
	"encoding/json"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// bracketScanWindow bounds the manual bracket-balancing scan so a broken
// document cannot stall extraction.
const bracketScanWindow = 500000

var (
	pinzAssignRe = regexp.MustCompile(`(?s)\b(?:var|let|const)\s+pinz\s*=\s*(\[.*?\])\s*;`)
	pinzWindowRe = regexp.MustCompile(`(?s)window(?:\.pinz|\[\s*["']pinz["']\s*\])\s*=\s*(\[.*?\])\s*;?`)
	pinzParseRe  = regexp.MustCompile(`pinz\s*=\s*JSON\.parse\(\s*(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)")\s*\)`)
	pinzAtobRe   = regexp.MustCompile(`JSON\.parse\(\s*atob\(\s*['"]([A-Za-z0-9+/=]+)['"]\s*\)\s*\)`)
	pinzPushRe   = regexp.MustCompile(`(?s)pinz\.push\(\s*(\{.*?\})\s*\)`)
	pinzDeclRe   = regexp.MustCompile(`\b(?:var|let|const)\s+pinz\b`)
)

// pinzStrategy attempts one recovery heuristic against a text blob. The
// boolean reports whether the strategy produced a usable result.
type pinzStrategy func(text string) ([]map[string]any, bool)

// scriptStrategies run per script block first, then again over the full
// serialized document; documentStrategies only make sense over the whole
// text. First success wins, and a failure in one strategy never blocks the
// next.
var scriptStrategies = []pinzStrategy{
	pinzFromAssignment,
	pinzFromJSONParse,
	pinzFromAtob,
	pinzFromWindow,
}

var documentStrategies = []pinzStrategy{
	pinzFromAssignment,
	pinzFromJSONParse,
	pinzFromPush,
	pinzFromBracketScan,
}

// ExtractPinz recovers the pinz array from the document's inline scripts.
// It returns nil only when every strategy fails; relative element order is
// always the source order.
func ExtractPinz(doc *goquery.Document) []map[string]any {
	if doc == nil {
		return nil
	}

	var scripts []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if text := s.Text(); text != "" {
			scripts = append(scripts, text)
		}
	})

	for _, strategy := range scriptStrategies {
		for _, script := range scripts {
			if pins, ok := strategy(script); ok {
				return pins
			}
		}
	}

	// The DOM parser may have relocated or escaped script content, so the
	// remaining strategies look at the whole serialized document.
	text, ok := documentText(doc)
	if !ok {
		return nil
	}
	for _, strategy := range documentStrategies {
		if pins, ok := strategy(text); ok {
			return pins
		}
	}
	return nil
}

// documentText serializes the whole document and undoes the entity escaping
// the serializer applies to attribute values, so URL parameters scan
// cleanly.
func documentText(doc *goquery.Document) (string, bool) {
	raw, err := doc.Html()
	if err != nil {
		return "", false
	}
	return html.UnescapeString(raw), true
}

// pinzFromAssignment handles var/let/const pinz = [...]; A successful parse
// of an empty array is still a success: the page declared it has no pins,
// and later strategies must not override that with unrelated data.
func pinzFromAssignment(text string) ([]map[string]any, bool) {
	m := pinzAssignRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return parseArray(m[1])
}

// pinzFromWindow handles window.pinz = [...] and window["pinz"] = [...].
func pinzFromWindow(text string) ([]map[string]any, bool) {
	m := pinzWindowRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return parseArray(m[1])
}

// pinzFromJSONParse handles pinz = JSON.parse('...') with either quote
// style; a single-quoted literal may contain bare double quotes.
func pinzFromJSONParse(text string) ([]map[string]any, bool) {
	m := pinzParseRe.FindStringSubmatchIndex(text)
	if m == nil {
		return nil, false
	}
	literal, quote := "", `'`
	if m[2] >= 0 {
		literal = text[m[2]:m[3]]
	} else {
		literal, quote = text[m[4]:m[5]], `"`
	}
	literal = strings.ReplaceAll(literal, `\`+quote, quote)
	var raw []any
	if err := json.Unmarshal([]byte(literal), &raw); err != nil {
		return nil, false
	}
	return onlyObjects(raw), true
}

// pinzFromAtob handles pinz = JSON.parse(atob('...')). Unlike the other
// strategies this pattern is not anchored to a pinz assignment, so an empty
// decoded array is not treated as a success: it could be any base64 blob on
// the page.
func pinzFromAtob(text string) ([]map[string]any, bool) {
	m := pinzAtobRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	decoded, err := base64.StdEncoding.DecodeString(m[1])
	if err != nil {
		return nil, false
	}
	var raw []any
	if err := json.Unmarshal(decoded, &raw); err != nil {
		return nil, false
	}
	pins := onlyObjects(raw)
	return pins, len(pins) > 0
}

// pinzFromPush collects every pinz.push({...}) argument when no single
// assignment exists, accumulating the objects in call order.
func pinzFromPush(text string) ([]map[string]any, bool) {
	var pins []map[string]any
	for _, m := range pinzPushRe.FindAllStringSubmatch(text, -1) {
		if obj, ok := lenientParseObject(m[1]); ok {
			pins = append(pins, obj)
		}
	}
	return pins, len(pins) > 0
}

// pinzFromBracketScan is the last resort: locate the declaration, then
// balance brackets by hand to find the array span. This recovers arrays
// whose nested structure defeats the non-greedy regex strategies.
func pinzFromBracketScan(text string) ([]map[string]any, bool) {
	loc := pinzDeclRe.FindStringIndex(text)
	if loc == nil {
		return nil, false
	}
	rest := text[loc[1]:]
	start := strings.IndexByte(rest, '[')
	if start < 0 {
		return nil, false
	}

	limit := len(rest)
	if limit > start+bracketScanWindow {
		limit = start + bracketScanWindow
	}
	depth := 0
	for i := start; i < limit; i++ {
		switch rest[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return parseArray(rest[start : i+1])
			}
		}
	}
	return nil, false
}
