package report

import (
	"net/url"
	"regexp"
)

var rawCIDRe = regexp.MustCompile(`[?&#]cid=(\d+)`)

// ExtractCID recovers a venue's numeric Google Maps identifier from a
// map-link URL. It tries the cid and ludocid query parameters, then a cid
// key inside the fragment, then a raw scan of the whole string. Malformed
// URLs never cause a failure; the sentinel is returned instead.
func ExtractCID(mapURL string) string {
	if mapURL == "" {
		return NotAvailable
	}

	if u, err := url.Parse(mapURL); err == nil {
		q := u.Query()
		for _, key := range []string{"cid", "ludocid"} {
			if v := q.Get(key); v != "" {
				return v
			}
		}
		if frag, err := url.ParseQuery(u.Fragment); err == nil {
			if v := frag.Get("cid"); v != "" {
				return v
			}
		}
	}

	if m := rawCIDRe.FindStringSubmatch(mapURL); m != nil {
		return m[1]
	}
	return NotAvailable
}
