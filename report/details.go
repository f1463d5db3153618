package report

import "github.com/PuerkitoBio/goquery"

// ParseDetailedResults extracts the per-location result panels from the
// results modal. When the modal is absent the list is empty.
func ParseDetailedResults(doc *goquery.Document) []DetailResult {
	var details []DetailResult

	container := doc.Find("div#resultModal div.results_body").First()
	if container.Length() == 0 {
		return details
	}

	container.Find("div.bg-light.panel-body").Each(func(_ int, panel *goquery.Selection) {
		name := panel.Find("h5").First()
		rating := ExtractRating(panel)

		// The address is the node right after the review-count span.
		address := NotAvailable
		if ratingSpan := panel.Find("div.rating-container").First().Next(); ratingSpan.Length() > 0 {
			if addrDiv := following(ratingSpan, "div"); addrDiv != nil {
				address = GetText(addrDiv, NotAvailable)
			}
		}

		mapURL := GetAttr(name.Find("a[href]"), "href", "")
		detail := DetailResult{
			Rank:    GetText(panel.Find("span.dot"), NotAvailable),
			Name:    GetText(name, NotAvailable),
			Rating:  rating.Rating,
			Reviews: rating.Reviews,
			Display: rating.Display,
			Address: address,
			MapURL:  NotAvailable,
			CID:     NotAvailable,
		}
		if mapURL != "" {
			detail.MapURL = mapURL
			detail.CID = ExtractCID(mapURL)
		}
		details = append(details, detail)
	})

	return details
}
