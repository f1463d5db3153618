package scan

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-redis/redis/v8"

	"rankscraper/cache"
)

// Handler serves scrape requests over HTTP, optionally memoizing results in
// Redis keyed by report URL.
type Handler struct {
	scraper  *Scraper
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *log.Logger
}

// NewHandler creates a Handler. cacheClient may be nil to disable caching.
func NewHandler(scraper *Scraper, cacheClient *redis.Client, cacheTTL time.Duration, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{scraper: scraper, cache: cacheClient, cacheTTL: cacheTTL, logger: logger}
}

// ScrapeHandler handles POST /scrape with a {"url": ...} body and returns
// the full result bundle.
func (h *Handler) ScrapeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var requestBody struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if requestBody.URL == "" {
		http.Error(w, "URL parameter is required in the request body", http.StatusBadRequest)
		return
	}

	h.ScrapeURL(w, requestBody.URL)
}

// ScrapeURL runs the pipeline for one report URL and writes the bundle as
// the response.
func (h *Handler) ScrapeURL(w http.ResponseWriter, url string) {
	bundle, err := h.scrape(url)
	if err != nil {
		h.logger.Error("scrape failed", "url", url, "err", err)
		http.Error(w, "Error scraping report: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bundle)
}

func (h *Handler) scrape(url string) (*Bundle, error) {
	if h.cache == nil {
		return h.scraper.Scrape(url)
	}
	return cache.Memoize(h.cache, url, h.cacheTTL, func() (*Bundle, error) {
		return h.scraper.Scrape(url)
	})
}
