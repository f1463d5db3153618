package report

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var (
	categoriesRe = regexp.MustCompile(`(?i)categories:`)
	claimRe      = regexp.MustCompile(`(?i)\b(un\s*claimed|claimed)\b`)
)

// ParseCompetitors extracts every row of the competitors table, preserving
// source row order (the ranking depends on position). A missing table yields
// an empty list.
func ParseCompetitors(doc *goquery.Document) []Competitor {
	var competitors []Competitor

	doc.Find("table#tbl_comp_rank tbody tr").Each(func(_ int, row *goquery.Selection) {
		nameLink := row.Find("a.ext").First()
		mapURL := GetAttr(nameLink, "href", NotAvailable)
		rating := ExtractRating(row)

		comp := Competitor{
			Name:        GetText(nameLink, NotAvailable),
			Rating:      rating.Rating,
			Reviews:     rating.Reviews,
			Display:     rating.Display,
			Address:     iconSiblingText(row, "i.fa-map-marker"),
			Categories:  paragraphMatching(row, categoriesRe),
			Website:     websiteLink(row),
			Photos:      iconSiblingText(row, "i.fa-photo"),
			ClaimStatus: claimStatus(row),
			Locations:   GetText(row.Find("td.text-center > h5"), NotAvailable),
			AverageRank: GetText(row.Find("span.dotlg2"), NotAvailable),
			MapURL:      mapURL,
			CID:         ExtractCID(GetAttr(nameLink, "href", "")),
		}
		competitors = append(competitors, comp)
	})

	return competitors
}

// iconSiblingText returns the text of the span wrapping the given
// font-awesome icon, e.g. the address span around the map-marker icon.
func iconSiblingText(row *goquery.Selection, iconSelector string) string {
	icon := row.Find(iconSelector).First()
	if icon.Length() == 0 {
		return NotAvailable
	}
	return GetText(icon.Closest("span"), NotAvailable)
}

// paragraphMatching returns the first p element whose text matches re.
func paragraphMatching(row *goquery.Selection, re *regexp.Regexp) string {
	result := NotAvailable
	row.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := CleanText(p.Text())
		if re.MatchString(text) {
			result = text
			return false
		}
		return true
	})
	return result
}

// websiteLink follows the globe icon to the anchor inside its span.
func websiteLink(row *goquery.Selection) string {
	globe := row.Find("i.fa-globe").First()
	if globe.Length() == 0 {
		return NotAvailable
	}
	return GetAttr(globe.Closest("span").Find("a[href]"), "href", NotAvailable)
}

// claimStatus finds the span stating whether the listing is claimed.
func claimStatus(row *goquery.Selection) string {
	result := NotAvailable
	row.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := CleanText(s.Text())
		if claimRe.MatchString(text) {
			result = text
			return false
		}
		return true
	})
	return result
}
