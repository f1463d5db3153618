// Package fetch retrieves report pages and raw endpoint bodies for the
// extraction core.
package fetch

import (
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"

// DocumentFetcher supplies a parsed document for a URL. Both the plain HTTP
// client and the browser-rendered fetcher satisfy it.
type DocumentFetcher interface {
	GetDocument(url string) (*goquery.Document, error)
}

// Client fetches over plain HTTP with full content-encoding handling.
type Client struct {
	http      *http.Client
	userAgent string
	limiter   *Limiter
}

// NewClient creates a fetch client. limiter may be nil to disable the
// inter-request delay.
func NewClient(timeout time.Duration, userAgent string, limiter *Limiter) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
		limiter:   limiter,
	}
}

// GetDocument fetches a URL and parses the response as HTML.
func (c *Client) GetDocument(url string) (*goquery.Document, error) {
	body, err := c.GetBody(url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %v", err)
	}
	return doc, nil
}

// GetBody fetches a URL and returns the decoded response body as text.
func (c *Client) GetBody(url string) (string, error) {
	c.limiter.Wait()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	reader, err := decodeBody(resp)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %v", err)
	}
	return string(body), nil
}

// Get fetches a URL and returns the body plus the response content type,
// for callers that branch on JSON vs HTML payloads.
func (c *Client) Get(url string) (string, string, error) {
	c.limiter.Wait()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json,text/html;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to make request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	reader, err := decodeBody(resp)
	if err != nil {
		return "", "", err
	}
	defer reader.Close()

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", "", fmt.Errorf("failed to read response body: %v", err)
	}
	return string(body), resp.Header.Get("Content-Type"), nil
}

// decodeBody wraps the response body in the matching decompressor.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %v", err)
		}
		return reader, nil
	case "deflate":
		return flate.NewReader(resp.Body), nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	case "zstd":
		reader, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %v", err)
		}
		return io.NopCloser(reader.IOReadCloser()), nil
	default:
		return resp.Body, nil
	}
}
