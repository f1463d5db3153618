// rankscan scrapes one local-rank report URL and writes the extracted data
// to JSON and CSV files.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"

	"rankscraper/analytics"
	"rankscraper/browser"
	"rankscraper/config"
	"rankscraper/export"
	"rankscraper/fetch"
	"rankscraper/scan"
)

func main() {
	reportURL := flag.String("url", "", "Report URL to scrape")
	outputDir := flag.String("output", "", "Directory for output files (overrides OUTPUT_DIR)")
	useBrowser := flag.Bool("browser", false, "Fetch through a headless browser")
	noAnalytics := flag.Bool("no-analytics", false, "Skip the secondary analytics endpoints")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "rankscan"})

	if *reportURL == "" {
		logger.Fatal("the -url flag is required")
	}

	cfg := config.Load()
	if *outputDir != "" {
		cfg.Export.OutputDir = *outputDir
	}

	baseURL, err := scan.BaseURL(*reportURL)
	if err != nil {
		logger.Fatal("invalid report URL", "err", err)
	}

	limiter := fetch.NewLimiter(cfg.Fetch.RateLimitBase, cfg.Fetch.RateLimitJitter)
	httpFetcher := fetch.NewClient(cfg.Fetch.Timeout, cfg.Fetch.UserAgent, limiter)

	var fetcher fetch.DocumentFetcher = httpFetcher
	method := "http"
	if *useBrowser {
		pool := browser.New(cfg.Browser.PoolSize)
		defer pool.Shutdown()
		fetcher = fetch.NewRenderedFetcher(pool, cfg.Fetch.Timeout, limiter)
		method = "browser"
	}

	var analyticsClient *analytics.Client
	if !*noAnalytics {
		analyticsClient = analytics.NewClient(httpFetcher, baseURL, logger)
	}

	scraper := scan.NewScraper(fetcher, analyticsClient, cfg.Analytics.MaxURLs, method, logger)

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	spin.Suffix = " scraping " + *reportURL
	spin.Start()
	bundle, err := scraper.Scrape(*reportURL)
	spin.Stop()
	if err != nil {
		logger.Fatal("scrape failed", "err", err)
	}

	writer, err := export.New(cfg.Export.OutputDir)
	if err != nil {
		logger.Fatal("failed to prepare output directory", "err", err)
	}

	for _, write := range []func(*scan.Bundle) (string, error){
		writer.WriteBundle,
		writer.WriteSummaryCSV,
		writer.WriteCompetitorsCSV,
		writer.WritePinsCSV,
	} {
		path, err := write(bundle)
		if err != nil {
			logger.Error("write failed", "err", err)
			continue
		}
		logger.Info("wrote", "file", path)
	}
}
