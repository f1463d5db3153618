// Package browser provides a pool of headless browser contexts for fetching
// report pages whose pin data is rendered client-side.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// Pool manages a fixed set of browser contexts for reuse. A report scrape is
// a single sequential fetch, so the pool stays small and never auto-scales.
type Pool struct {
	contexts    chan context.Context
	cancelFuncs map[context.Context]context.CancelFunc
	size        int
	allocCtx    context.Context
	allocCancel context.CancelFunc
	initOnce    sync.Once
	mu          sync.Mutex
	initialized bool
}

// New creates a browser pool of the given size.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		size:        size,
		contexts:    make(chan context.Context, size),
		cancelFuncs: make(map[context.Context]context.CancelFunc),
	}
}

// Initialize starts the shared allocator and warms up the contexts. Safe to
// call more than once.
func (pool *Pool) Initialize() error {
	var initErr error
	pool.initOnce.Do(func() {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-extensions", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("ignore-certificate-errors", true),
			chromedp.WindowSize(1400, 1000),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"),
		)
		pool.allocCtx, pool.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)

		pool.mu.Lock()
		defer pool.mu.Unlock()
		for i := 0; i < pool.size; i++ {
			ctx, cancel := chromedp.NewContext(pool.allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
			if err := chromedp.Run(ctx, chromedp.Navigate("about:blank")); err != nil {
				cancel()
				initErr = fmt.Errorf("failed to initialize browser: %v", err)
				return
			}
			pool.contexts <- ctx
			pool.cancelFuncs[ctx] = cancel
		}
		pool.initialized = true
	})
	return initErr
}

// FetchURL navigates to a URL, waits for the page scripts to settle, and
// returns the rendered HTML.
func (pool *Pool) FetchURL(url string, timeout time.Duration) (string, error) {
	if err := pool.Initialize(); err != nil {
		return "", err
	}

	var ctx context.Context
	select {
	case ctx = <-pool.contexts:
	case <-time.After(timeout):
		return "", fmt.Errorf("timeout getting browser context from pool")
	}
	defer func() {
		// Clear page state before returning the context to the pool.
		refreshCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		_ = chromedp.Run(refreshCtx, chromedp.Navigate("about:blank"))
		cancel()
		pool.contexts <- ctx
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var htmlContent string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL content: %v", err)
	}
	return htmlContent, nil
}

// Shutdown closes all browser instances.
func (pool *Pool) Shutdown() {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	if !pool.initialized {
		return
	}
	for ctx, cancel := range pool.cancelFuncs {
		cancel()
		delete(pool.cancelFuncs, ctx)
	}
	if pool.allocCancel != nil {
		pool.allocCancel()
	}
	for len(pool.contexts) > 0 {
		<-pool.contexts
	}
	pool.initialized = false
}
