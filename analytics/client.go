package analytics

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"rankscraper/fetch"
	"rankscraper/report"
)

// Point is one coordinate pair recovered from a secondary endpoint response,
// tagged with the URL and identifiers it came from.
type Point struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	SourceURL  string  `json:"source_url"`
	SearchGUID string  `json:"search_guid"`
	PID        string  `json:"pid"`
}

// Client calls the report site's secondary endpoints: the competitors-list
// API and the per-venue analytics pages.
type Client struct {
	fetcher *fetch.Client
	baseURL string
	logger  *log.Logger
}

// NewClient creates an analytics client resolving relative endpoint paths
// against baseURL.
func NewClient(fetcher *fetch.Client, baseURL string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{fetcher: fetcher, baseURL: baseURL, logger: logger}
}

// FetchPoints requests each candidate endpoint sequentially and mines the
// response for a coordinate pair. A failing URL is skipped; it never aborts
// the remaining candidates.
func (c *Client) FetchPoints(candidates []Candidate) []Point {
	var points []Point
	for _, cand := range candidates {
		absolute, err := c.resolve(cand.URL)
		if err != nil {
			c.logger.Warn("skipping malformed analytics URL", "url", cand.URL, "err", err)
			continue
		}
		body, err := c.fetcher.GetBody(absolute)
		if err != nil {
			c.logger.Warn("analytics fetch failed", "url", absolute, "err", err)
			continue
		}
		lat, lon, ok := ExtractCoords(body)
		if !ok {
			continue
		}
		points = append(points, Point{
			Lat:        lat,
			Lon:        lon,
			SourceURL:  absolute,
			SearchGUID: cand.SearchGUID,
			PID:        cand.PID,
		})
	}
	return points
}

// GetCompetitorsList calls /scans/get-competitors-list for the scan. JSON
// responses are decoded as-is; HTML responses are mined for their modal
// content and table rows.
func (c *Client) GetCompetitorsList(scanGUID string) (map[string]any, error) {
	if scanGUID == "" {
		return nil, fmt.Errorf("scan_guid is required")
	}
	return c.CallEndpoint(fmt.Sprintf("/scans/get-competitors-list?scan_guid=%s", url.QueryEscape(scanGUID)))
}

// GetResults calls /analytics/GetResults for one venue.
func (c *Client) GetResults(searchGUID, pid string) (map[string]any, error) {
	if searchGUID == "" || pid == "" {
		return nil, fmt.Errorf("search_guid and pid are both required")
	}
	return c.CallEndpoint(fmt.Sprintf("/analytics/GetResults?search_guid=%s&pid=%s",
		url.QueryEscape(searchGUID), url.QueryEscape(pid)))
}

// CallEndpoint fetches a relative endpoint path and decodes the payload by
// content type.
func (c *Client) CallEndpoint(path string) (map[string]any, error) {
	absolute, err := c.resolve(path)
	if err != nil {
		return nil, err
	}
	body, contentType, err := c.fetcher.Get(absolute)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(contentType, "application/json") {
		var payload map[string]any
		if err := json.Unmarshal([]byte(body), &payload); err != nil {
			return nil, fmt.Errorf("failed to decode JSON payload: %v", err)
		}
		return payload, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML payload: %v", err)
	}
	return parseHTMLPayload(doc), nil
}

func (c *Client) resolve(ref string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %v", err)
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint URL: %v", err)
	}
	return base.ResolveReference(rel).String(), nil
}

// parseHTMLPayload flattens an HTML endpoint response into a generic,
// JSON-serializable structure: the modal body markup plus every table as a
// cell grid.
func parseHTMLPayload(doc *goquery.Document) map[string]any {
	payload := map[string]any{}

	if modal := doc.Find(".modal-body").First(); modal.Length() > 0 {
		if html, err := modal.Html(); err == nil {
			payload["modal_content"] = html
		}
	}

	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		var rows [][]string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, report.GetText(cell, report.NotAvailable))
			})
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		})
		payload[fmt.Sprintf("table_%d", i)] = rows
	})

	return payload
}
