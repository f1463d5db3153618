package report

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// findHeading locates an h4 heading whose text equals the given label,
// case-insensitively and ignoring surrounding whitespace. Returns nil when
// the page revision lacks the section.
func findHeading(doc *goquery.Document, label string) *goquery.Selection {
	var found *goquery.Selection
	want := strings.ToLower(label)
	doc.Find("h4").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.ToLower(CleanText(s.Text())) == want {
			found = s
			return false
		}
		return true
	})
	return found
}

// following returns the first element matching selector that appears after
// start in document order, looking through later siblings of start and of
// each of its ancestors. This mirrors how the report template places a
// section's table after, not inside, its heading.
func following(start *goquery.Selection, selector string) *goquery.Selection {
	for cur := start; cur != nil && cur.Length() > 0; cur = cur.Parent() {
		for sib := cur.Next(); sib.Length() > 0; sib = sib.Next() {
			if sib.Is(selector) {
				return sib
			}
			if m := sib.Find(selector).First(); m.Length() > 0 {
				return m
			}
		}
	}
	return nil
}

// findCell returns the first td in table whose text matches re.
func findCell(table *goquery.Selection, re *regexp.Regexp) *goquery.Selection {
	var found *goquery.Selection
	table.Find("td").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if re.MatchString(CleanText(s.Text())) {
			found = s
			return false
		}
		return true
	})
	return found
}
