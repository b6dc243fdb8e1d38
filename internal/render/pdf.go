package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/mohitmishra786/cv-wiz/internal/types"
)

// Letter paper at Chrome's default 96 CSS pixels per inch.
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11.0
	pixelsPerInch     = 96.0
)

// DefaultRenderTimeout bounds one headless-Chrome print run.
const DefaultRenderTimeout = 30 * time.Second

// PDFRenderer prints compiled resumes to PDF with headless Chrome. Requires
// Chrome/Chromium on the host. It implements compile.Renderer.
type PDFRenderer struct {
	timeout time.Duration
}

// NewPDFRenderer creates a renderer with the default timeout.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{timeout: DefaultRenderTimeout}
}

// RenderPDFBase64 lays out the resume, prints it, and returns the PDF
// base64-encoded. It returns a descriptive error when the rendered document
// exceeds maxPages.
func (r *PDFRenderer) RenderPDFBase64(ctx context.Context, resume *types.CompiledResume, sectionOrder []string, maxPages int) (string, error) {
	html, err := BuildHTML(resume, sectionOrder)
	if err != nil {
		return "", err
	}
	if maxPages < 1 {
		maxPages = 1
	}

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

	browserCtx, cancel = context.WithTimeout(browserCtx, r.timeout)
	defer cancel()

	var contentHeight float64
	var pdf []byte

	err = chromedp.Run(browserCtx,
		chromedp.Navigate("data:text/html,"+url.PathEscape(html)),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.documentElement.scrollHeight`, &contentHeight),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithPrintBackground(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to print resume PDF: %w", err)
	}

	if pages := pageCount(contentHeight); pages > maxPages {
		return "", fmt.Errorf("resume exceeds %d page(s); generated %d pages. "+
			"Try a more compact template or reduce profile content", maxPages, pages)
	}

	return base64.StdEncoding.EncodeToString(pdf), nil
}

// pageCount estimates printed pages from rendered content height.
func pageCount(contentHeightPx float64) int {
	pageHeightPx := paperHeightInches * pixelsPerInch
	if contentHeightPx <= 0 {
		return 1
	}
	return int(math.Ceil(contentHeightPx / pageHeightPx))
}
