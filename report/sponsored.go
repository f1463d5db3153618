package report

import "github.com/PuerkitoBio/goquery"

// ParseSponsored extracts every row of the sponsored listings table. The seen
// count sits in the last cell of each row.
func ParseSponsored(doc *goquery.Document) []Sponsored {
	var listings []Sponsored

	doc.Find("table#tbl_ads_rank tbody tr").Each(func(_ int, row *goquery.Selection) {
		nameLink := row.Find("a.ext").First()
		rating := ExtractRating(row)

		listings = append(listings, Sponsored{
			Name:      GetText(nameLink, NotAvailable),
			Rating:    rating.Rating,
			Reviews:   rating.Reviews,
			Display:   rating.Display,
			SeenCount: GetText(row.Find("td").Last(), NotAvailable),
			MapURL:    GetAttr(nameLink, "href", NotAvailable),
			CID:       ExtractCID(GetAttr(nameLink, "href", "")),
		})
	})

	return listings
}
