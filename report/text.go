package report

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// GetText returns the trimmed, whitespace-collapsed text of the first node in
// the selection, or def when the selection is nil or empty. It never panics;
// every other extractor in this package is built on top of it.
func GetText(sel *goquery.Selection, def string) string {
	if sel == nil || sel.Length() == 0 {
		return def
	}
	text := CleanText(sel.First().Text())
	if text == "" {
		return def
	}
	return text
}

// GetAttr returns the named attribute of the first node in the selection, or
// def when the selection is nil, empty, or lacks the attribute.
func GetAttr(sel *goquery.Selection, name, def string) string {
	if sel == nil || sel.Length() == 0 {
		return def
	}
	val, ok := sel.First().Attr(name)
	if !ok || strings.TrimSpace(val) == "" {
		return def
	}
	return strings.TrimSpace(val)
}

// CleanText collapses runs of whitespace into single spaces and trims the
// result.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
