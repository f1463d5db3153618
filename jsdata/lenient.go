// Package jsdata recovers the pinz map array and the scan identifiers from
// inline script content, tolerating the encodings seen across report page
// revisions.
package jsdata

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	lineCommentRe  = regexp.MustCompile(`(^|[^:"'])//[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	callExprRe     = regexp.MustCompile(`([:,\[]\s*)[A-Za-z_$][\w$]*\s*\([^()]*\)`)
	singleQuoteRe  = regexp.MustCompile(`'([^'\\]*(?:\\.[^'\\]*)*)'`)
	bareKeyRe      = regexp.MustCompile(`([,{[]\s*)([A-Za-z_$][\w$]*)\s*:`)
	trailingComma  = regexp.MustCompile(`,\s*([}\]])`)
)

// lenientParseArray parses a JavaScript array literal that already failed a
// strict JSON parse. It strips comments, neutralizes color-lookup call
// expressions, rewrites single-quoted strings and bare object keys, and
// drops trailing commas. On any remaining failure it reports false rather
// than an error: the caller's next strategy gets its turn.
func lenientParseArray(text string) ([]map[string]any, bool) {
	var raw []any
	if err := json.Unmarshal([]byte(repairJS(text)), &raw); err != nil {
		return nil, false
	}
	return onlyObjects(raw), true
}

// lenientParseObject is the single-element variant used for push arguments.
func lenientParseObject(text string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		return obj, true
	}
	if err := json.Unmarshal([]byte(repairJS(text)), &obj); err == nil {
		return obj, true
	}
	return nil, false
}

// repairJS transforms known JavaScript-only syntax into strict JSON.
func repairJS(text string) string {
	text = blockCommentRe.ReplaceAllString(text, "")
	text = lineCommentRe.ReplaceAllString(text, "$1")
	// Color values are sometimes emitted as helper calls like getColor(3);
	// replace them with a placeholder string so the structure still parses.
	// The rewrite only fires in value position so a parenthesized phrase
	// inside a string value survives.
	text = callExprRe.ReplaceAllString(text, `$1"auto"`)
	text = singleQuoteRe.ReplaceAllStringFunc(text, func(m string) string {
		inner := m[1 : len(m)-1]
		inner = strings.ReplaceAll(inner, `\'`, `'`)
		inner = strings.ReplaceAll(inner, `"`, `\"`)
		return `"` + inner + `"`
	})
	text = bareKeyRe.ReplaceAllString(text, `$1"$2":`)
	text = trailingComma.ReplaceAllString(text, `$1`)
	return text
}

// onlyObjects keeps the mapping-shaped elements of a parsed array, in order.
func onlyObjects(raw []any) []map[string]any {
	var out []map[string]any
	for _, el := range raw {
		if obj, ok := el.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// parseArray tries strict JSON first, then the lenient repair path. It
// reports whether the text parsed at all: an empty array is a successful
// parse, distinct from a failure.
func parseArray(text string) ([]map[string]any, bool) {
	var raw []any
	if err := json.Unmarshal([]byte(text), &raw); err == nil {
		return onlyObjects(raw), true
	}
	return lenientParseArray(text)
}
