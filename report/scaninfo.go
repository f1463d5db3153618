package report

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var keywordCellRe = regexp.MustCompile(`(?i)keyword`)

// ParseScanInfo extracts the business fields from the first table after the
// "Scan Information" heading. An absent heading or table yields an empty
// record, not an error: older page revisions simply lack the section.
func ParseScanInfo(doc *goquery.Document) FieldRecord {
	results := FieldRecord{}

	heading := findHeading(doc, "Scan Information")
	if heading == nil {
		return results
	}
	table := following(heading, "table")
	if table == nil {
		return results
	}

	results["Business Name"] = GetText(table.Find("span.bizname"), NotAvailable)
	results["Address"] = GetText(table.Find("span.center-block"), NotAvailable)

	rating := ExtractRating(table)
	results["Rating"] = rating.Rating
	results["Reviews"] = rating.Reviews
	results["Rating/Reviews"] = rating.Display

	// The keyword value lives in the cell right after the one labeled
	// "Keyword ...".
	results["Keyword and language"] = NotAvailable
	if kwCell := findCell(table, keywordCellRe); kwCell != nil {
		results["Keyword and language"] = GetText(kwCell.Next(), NotAvailable)
	}

	results["Date"] = GetText(table.Find("td.cnv_dt_lcl"), NotAvailable)

	return results
}
