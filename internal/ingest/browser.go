package ingest

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// browserRenderTimeout bounds one headless-browser render of a posting.
const browserRenderTimeout = 60 * time.Second

// renderWithBrowser renders a JavaScript-heavy posting in headless Chrome
// and returns the resulting HTML. Requires Chrome/Chromium on the host.
func renderWithBrowser(ctx context.Context, postingURL string) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, browserRenderTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(postingURL),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to fill in the posting.
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: postingURL, Message: "browser rendering failed", Cause: err}
	}
	if html == "" {
		return "", &Error{URL: postingURL, Message: "browser returned empty document"}
	}
	return html, nil
}
