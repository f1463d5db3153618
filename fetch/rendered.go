package fetch

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"rankscraper/browser"
)

// RenderedFetcher produces documents through the headless browser pool, for
// page revisions that build the pinz array client-side.
type RenderedFetcher struct {
	pool    *browser.Pool
	timeout time.Duration
	limiter *Limiter
}

// NewRenderedFetcher wraps a browser pool as a DocumentFetcher.
func NewRenderedFetcher(pool *browser.Pool, timeout time.Duration, limiter *Limiter) *RenderedFetcher {
	return &RenderedFetcher{pool: pool, timeout: timeout, limiter: limiter}
}

// GetDocument fetches the rendered HTML and parses it.
func (f *RenderedFetcher) GetDocument(url string) (*goquery.Document, error) {
	f.limiter.Wait()

	html, err := f.pool.FetchURL(url, f.timeout)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %v", err)
	}
	return doc, nil
}
