package browser

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Chrome drives a headless Chrome instance through chromedp.
type Chrome struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	loadTimeout   time.Duration
}

// StartChrome launches the headless browser eagerly so that acquisition
// failure is visible at run start, not at the first page load.
func StartChrome(ctx context.Context, loadTimeout time.Duration) (*Chrome, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	return &Chrome{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		loadTimeout:   loadTimeout,
	}, nil
}

// Load navigates a fresh tab to url and waits for opts.WaitVisible within
// the configured load timeout, then snapshots the rendered document.
func (c *Chrome) Load(ctx context.Context, url string, opts LoadOptions) (*Page, error) {
	tabCtx, cancelTab := chromedp.NewContext(c.browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, c.loadTimeout)
	defer cancelTimeout()

	// Respect caller cancellation as well as the load timeout.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	if err := chromedp.Run(tabCtx, chromedp.Navigate(url)); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}

	if opts.Dismiss != "" {
		c.tryDismiss(tabCtx, opts.Dismiss)
	}

	if opts.WaitVisible != "" {
		if err := chromedp.Run(tabCtx, chromedp.WaitVisible(opts.WaitVisible, chromedp.ByQuery)); err != nil {
			return nil, fmt.Errorf("wait for %q on %s: %w", opts.WaitVisible, url, err)
		}
	}

	for i := 0; i < opts.ScrollPasses; i++ {
		err := chromedp.Run(tabCtx,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight);`, nil),
			chromedp.Sleep(opts.ScrollPause),
		)
		if err != nil {
			return nil, fmt.Errorf("scroll %s: %w", url, err)
		}
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", url, err)
	}
	return NewPageFromHTML(url, html)
}

// tryDismiss clicks an overlay if it shows up quickly. Overlays are
// optional; a miss is logged and ignored.
func (c *Chrome) tryDismiss(tabCtx context.Context, selector string) {
	clickCtx, cancel := context.WithTimeout(tabCtx, 3*time.Second)
	defer cancel()
	err := chromedp.Run(clickCtx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
	)
	if err != nil {
		log.Printf("[browser] overlay %q not dismissed: %v", selector, err)
	}
}

func (c *Chrome) Close() error {
	c.browserCancel()
	c.allocCancel()
	return nil
}
