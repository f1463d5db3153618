package report

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	outOfFiveRe  = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)\s*out of 5`)
	widthPctRe   = regexp.MustCompile(`width\s*:\s*(\d+(?:\.\d+)?)\s*%`)
	parenCountRe = regexp.MustCompile(`\(\s*(\d+)`)
	firstIntRe   = regexp.MustCompile(`\d+`)
)

// ExtractRating derives a rating value and review count from the rating
// markup inside sel. The rating comes from an "X out of 5" title attribute
// when present, otherwise from a percentage-width star bar. The review count
// comes from the element immediately following the rating container.
// Any parse failure falls through to the next strategy or to the defaults.
func ExtractRating(sel *goquery.Selection) Rating {
	out := Rating{Rating: NotAvailable, Reviews: "0", Display: NotAvailable}
	if sel == nil || sel.Length() == 0 {
		return out
	}

	container := sel.Find("div.rating-container").First()
	if container.Length() == 0 {
		if sel.Is("div.rating-container") {
			container = sel.First()
		} else {
			return out
		}
	}

	if rating, ok := ratingFromTitle(container); ok {
		out.Rating = rating
	} else if rating, ok := ratingFromWidth(container); ok {
		out.Rating = rating
	}

	if reviews, ok := reviewCount(container.Next()); ok {
		out.Reviews = reviews
	}

	if out.Rating != NotAvailable {
		out.Display = fmt.Sprintf("%s (%s)", out.Rating, out.Reviews)
	}
	return out
}

// ratingFromTitle looks for a star element with a human-readable
// "X out of 5" descriptor in its title or tooltip attribute.
func ratingFromTitle(container *goquery.Selection) (string, bool) {
	var rating string
	candidates := container.Find("[title], [data-original-title]").AddSelection(container)
	candidates.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, attr := range []string{"title", "data-original-title"} {
			val, ok := s.Attr(attr)
			if !ok {
				continue
			}
			m := outOfFiveRe.FindStringSubmatch(strings.TrimSpace(val))
			if m == nil {
				continue
			}
			// Tolerate a comma decimal separator.
			rating = strings.ReplaceAll(m[1], ",", ".")
			return false
		}
		return true
	})
	return rating, rating != ""
}

// ratingFromWidth converts a 0-100% visual star bar to a 0-5 scale.
func ratingFromWidth(container *goquery.Selection) (string, bool) {
	var rating string
	container.Find("[style]").AddSelection(container).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		style, ok := s.Attr("style")
		if !ok {
			return true
		}
		m := widthPctRe.FindStringSubmatch(style)
		if m == nil {
			return true
		}
		pct, err := strconv.ParseFloat(m[1], 64)
		if err != nil || pct < 0 || pct > 100 {
			return true
		}
		rating = strconv.FormatFloat(math.Round(pct*5/100*10)/10, 'f', 1, 64)
		return false
	})
	return rating, rating != ""
}

// reviewCount parses the first integer inside optional parentheses from the
// rating container's following sibling, e.g. "(35)" or "(35 reviews)".
func reviewCount(sibling *goquery.Selection) (string, bool) {
	text := GetText(sibling, "")
	if text == "" {
		return "", false
	}
	if m := parenCountRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := firstIntRe.FindString(text); m != "" {
		return m, true
	}
	return "", false
}
