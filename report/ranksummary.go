package report

import (
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var (
	unRankedRe    = regexp.MustCompile(`(?i)\bun\s*ranked locations\b`)
	rankedRe      = regexp.MustCompile(`(?i)\branked locations\b`)
	averageRankRe = regexp.MustCompile(`(?i)\baverage rank\b`)
	avgTotalRe    = regexp.MustCompile(`(?i)\bavg total rank\b`)
	bestRankRe    = regexp.MustCompile(`(?i)\bbest rank\b`)
	maxDistanceRe = regexp.MustCompile(`(?i)\bmax distance\b`)
)

// ParseRankSummary extracts the key/value rows of the first table after the
// "Rank Summary" heading. Well-known keys are normalized; any other row is
// stored verbatim under its literal label so new template fields survive.
func ParseRankSummary(doc *goquery.Document) FieldRecord {
	results := FieldRecord{}

	heading := findHeading(doc, "Rank Summary")
	if heading == nil {
		return results
	}
	table := following(heading, "table")
	if table == nil {
		return results
	}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		keyCell := cells.Eq(0)
		valueCell := cells.Eq(1)

		stripped := keyCell.Clone()
		stripped.Find("icon, i").Remove()
		key := CleanText(stripped.Text())
		if key == "" {
			return
		}

		value := GetText(valueCell, NotAvailable)

		switch {
		// "Un Ranked Locations" contains "Ranked Locations" as a
		// substring, so it must be checked first.
		case unRankedRe.MatchString(key):
			results["Un Ranked Locations"] = value
		case rankedRe.MatchString(key):
			results["Ranked Locations"] = rankedValue(valueCell, value)
		case averageRankRe.MatchString(key):
			if GetAttr(keyCell.Find("span"), "title", "") != "" {
				results["Average rank (Ranked Locations)"] = value
			} else {
				results["Average rank"] = value
			}
		case avgTotalRe.MatchString(key):
			results["Avg total rank (All Locations)"] = value
		case bestRankRe.MatchString(key):
			results["Best rank"] = value
		case maxDistanceRe.MatchString(key):
			results["Max Distance"] = value
		default:
			results[key] = value
		}
	})

	return results
}

// rankedValue composes "ranked/total" when the value cell carries the two
// nested spans the template uses for the ranked-of-total pair.
func rankedValue(valueCell *goquery.Selection, fallback string) string {
	spans := valueCell.Find("span")
	if spans.Length() >= 2 {
		ranked := GetText(spans.Eq(0), NotAvailable)
		total := GetText(spans.Eq(1), NotAvailable)
		return fmt.Sprintf("%s/%s", ranked, total)
	}
	return fallback
}
