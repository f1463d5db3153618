// Package scan coordinates the section parsers, the embedded-script
// extractor and the analytics fallback into one result bundle per report.
package scan

import (
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"rankscraper/analytics"
	"rankscraper/fetch"
	"rankscraper/jsdata"
	"rankscraper/mapdata"
	"rankscraper/report"
)

const scraperVersion = "1.0"

// Meta describes one scrape run.
type Meta struct {
	ScrapedAt string `json:"scraped_at"`
	URL       string `json:"url"`
	Method    string `json:"method"`
	Version   string `json:"version"`
}

// Bundle is the complete result of one report scrape. It is assembled once
// and never mutated afterwards; every value in it is JSON-serializable.
type Bundle struct {
	ScanInfo        report.FieldRecord    `json:"scan_info"`
	RankSummary     report.FieldRecord    `json:"rank_summary"`
	Competitors     []report.Competitor   `json:"competitors"`
	Sponsored       []report.Sponsored    `json:"sponsored_listings"`
	DetailedResults []report.DetailResult `json:"detailed_results"`
	Pins            []mapdata.Pin         `json:"map_data"`
	FallbackPoints  []analytics.Point     `json:"fallback_points,omitempty"`
	Identifiers     jsdata.Identifiers    `json:"identifiers"`
	API             map[string]any        `json:"api_data,omitempty"`
	Meta            Meta                  `json:"metadata"`
}

// Scraper runs the full extraction pipeline for one report URL at a time.
type Scraper struct {
	fetcher     fetch.DocumentFetcher
	analytics   *analytics.Client
	maxFallback int
	method      string
	logger      *log.Logger
}

// NewScraper builds a scraper. analyticsClient may be nil to disable the
// secondary-endpoint calls (tests do this).
func NewScraper(fetcher fetch.DocumentFetcher, analyticsClient *analytics.Client, maxFallback int, method string, logger *log.Logger) *Scraper {
	if logger == nil {
		logger = log.Default()
	}
	return &Scraper{
		fetcher:     fetcher,
		analytics:   analyticsClient,
		maxFallback: maxFallback,
		method:      method,
		logger:      logger,
	}
}

// Scrape fetches a report URL and extracts everything the page offers.
// Section parsers and the script extractor are independent; a section absent
// from this page revision yields an empty record, not an error.
func (s *Scraper) Scrape(reportURL string) (*Bundle, error) {
	doc, err := s.fetcher.GetDocument(reportURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report page: %v", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("fetcher returned no document for %s", reportURL)
	}

	ids := jsdata.ExtractIdentifiers(doc)
	rawPins := jsdata.ExtractPinz(doc)
	pins := mapdata.Normalize(rawPins)

	bundle := &Bundle{
		ScanInfo:        report.ParseScanInfo(doc),
		RankSummary:     report.ParseRankSummary(doc),
		Competitors:     report.ParseCompetitors(doc),
		Sponsored:       report.ParseSponsored(doc),
		DetailedResults: report.ParseDetailedResults(doc),
		Pins:            pins,
		Identifiers:     ids,
		Meta: Meta{
			ScrapedAt: time.Now().UTC().Format(time.RFC3339),
			URL:       reportURL,
			Method:    s.method,
			Version:   scraperVersion,
		},
	}

	s.logger.Info("extracted report sections",
		"competitors", len(bundle.Competitors),
		"sponsored", len(bundle.Sponsored),
		"details", len(bundle.DetailedResults),
		"pins", len(pins),
		"usable_pins", mapdata.UsableCount(pins))

	if s.analytics != nil {
		// Only fall back to the analytics endpoints when the embedded
		// script gave us no usable geocoordinates at all.
		if mapdata.UsableCount(pins) == 0 {
			candidates := analytics.CollectCandidates(doc, ids.PlaceID, s.maxFallback)
			if len(candidates) > 0 {
				s.logger.Info("no usable pin coordinates, trying analytics fallback", "candidates", len(candidates))
				bundle.FallbackPoints = s.analytics.FetchPoints(candidates)
			}
		}

		if ids.ScanGUID != "" {
			if payload, err := s.analytics.GetCompetitorsList(ids.ScanGUID); err == nil {
				bundle.API = map[string]any{"competitors_api": payload}
			} else {
				s.logger.Warn("competitors-list API call failed", "err", err)
			}
		}
	}

	return bundle, nil
}

// BaseURL derives the scheme://host prefix of a report URL for resolving
// relative endpoint paths.
func BaseURL(reportURL string) (string, error) {
	u, err := url.Parse(reportURL)
	if err != nil {
		return "", fmt.Errorf("invalid report URL: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("report URL %q has no scheme or host", reportURL)
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}
