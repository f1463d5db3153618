// Package analytics recovers coordinates for pins the embedded script could
// not place, via the per-venue secondary endpoints.
package analytics

import (
	"fmt"
	"html"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

var analyticsURLRe = regexp.MustCompile(`/analytics/GetResults\?[^"'\s<>]+`)

// Candidate is one secondary analytics endpoint reference found in the
// document, with the identifiers pulled from its query string.
type Candidate struct {
	URL        string `json:"url"`
	SearchGUID string `json:"search_guid"`
	PID        string `json:"pid"`
}

// CollectCandidates finds every analytics endpoint URL in the document. A
// candidate must carry a UUID-shaped search_guid; a missing pid is filled
// from defaultPID when available, otherwise the reference is skipped. The
// result is deduplicated and bounded to max entries, which also bounds the
// fallback's total request volume.
func CollectCandidates(doc *goquery.Document, defaultPID string, max int) []Candidate {
	if doc == nil || max <= 0 {
		return nil
	}
	raw, err := doc.Html()
	if err != nil {
		return nil
	}
	// Undo the serializer's attribute escaping so &pid= parameters parse.
	text := html.UnescapeString(raw)

	var candidates []Candidate
	seen := map[string]bool{}
	for _, ref := range analyticsURLRe.FindAllString(text, -1) {
		cand, ok := parseCandidate(ref, defaultPID)
		if !ok || seen[cand.URL] {
			continue
		}
		seen[cand.URL] = true
		candidates = append(candidates, cand)
		if len(candidates) >= max {
			break
		}
	}
	return candidates
}

func parseCandidate(ref, defaultPID string) (Candidate, bool) {
	u, err := url.Parse(ref)
	if err != nil {
		return Candidate{}, false
	}
	q := u.Query()

	guid := q.Get("search_guid")
	if _, err := uuid.Parse(guid); err != nil {
		return Candidate{}, false
	}

	pid := q.Get("pid")
	if pid == "" {
		if defaultPID == "" {
			return Candidate{}, false
		}
		pid = defaultPID
		ref = fmt.Sprintf("%s&pid=%s", ref, url.QueryEscape(pid))
	}

	return Candidate{URL: ref, SearchGUID: guid, PID: pid}, true
}
