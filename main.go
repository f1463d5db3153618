package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"rankscraper/analytics"
	"rankscraper/browser"
	"rankscraper/cache"
	"rankscraper/config"
	"rankscraper/fetch"
	"rankscraper/scan"
)

const defaultReportBase = "https://www.local-rank.report"

func main() {
	cfg := config.Load()
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "rankscraper"})

	reportBase := os.Getenv("REPORT_BASE_URL")
	if reportBase == "" {
		reportBase = defaultReportBase
	}

	limiter := fetch.NewLimiter(cfg.Fetch.RateLimitBase, cfg.Fetch.RateLimitJitter)
	httpFetcher := fetch.NewClient(cfg.Fetch.Timeout, cfg.Fetch.UserAgent, limiter)

	var fetcher fetch.DocumentFetcher = httpFetcher
	var pool *browser.Pool
	if cfg.Fetch.UseBrowser {
		pool = browser.New(cfg.Browser.PoolSize)
		defer pool.Shutdown()
		fetcher = fetch.NewRenderedFetcher(pool, cfg.Fetch.Timeout, limiter)
	}

	analyticsClient := analytics.NewClient(httpFetcher, reportBase, logger)
	scraper := scan.NewScraper(fetcher, analyticsClient, cfg.Analytics.MaxURLs, fetchMethod(cfg), logger)

	var cacheClient = cacheClientFor(cfg)
	handler := scan.NewHandler(scraper, cacheClient, cfg.Cache.TTL, logger)

	router := mux.NewRouter()
	router.HandleFunc("/scrape", handler.ScrapeHandler).Methods("POST")
	router.HandleFunc("/scan/{scanGuid}", scanByGUIDHandler(handler, reportBase)).Methods("GET")

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server is running", "addr", addr)

	wrapped := handlers.CORS()(handlers.CombinedLoggingHandler(os.Stdout, router))
	if err := http.ListenAndServe(addr, wrapped); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

// scanByGUIDHandler is a convenience route that builds the report URL from a
// scan GUID and delegates to the scrape handler's pipeline.
func scanByGUIDHandler(handler *scan.Handler, reportBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guid := mux.Vars(r)["scanGuid"]
		if guid == "" {
			http.Error(w, "scanGuid parameter is required", http.StatusBadRequest)
			return
		}
		handler.ScrapeURL(w, fmt.Sprintf("%s/scan/%s", reportBase, guid))
	}
}

func cacheClientFor(cfg config.Config) *redis.Client {
	if !cfg.Cache.Enabled {
		return nil
	}
	return cache.New(cfg.Cache.RedisAddr)
}

func fetchMethod(cfg config.Config) string {
	if cfg.Fetch.UseBrowser {
		return "browser"
	}
	return "http"
}
