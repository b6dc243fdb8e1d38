// Package ingest fetches job postings from URLs and extracts the readable
// text used as job description input for compilation.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the HTTP request timeout for posting fetches.
const DefaultTimeout = 30 * time.Second

// defaultUserAgent identifies the service to job boards.
const defaultUserAgent = "Mozilla/5.0 (compatible; CVWiz/1.0)"

// minContentLength is the shortest extracted text accepted from a static
// fetch. Anything shorter usually means a JavaScript-rendered posting, so
// the caller should fall back to browser rendering.
const minContentLength = 500

// Error describes a failed posting fetch.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingest error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingest error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// FetchHTML retrieves the raw HTML of a job posting URL.
func FetchHTML(ctx context.Context, postingURL string) (string, error) {
	parsed, err := url.Parse(postingURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: postingURL, Message: "invalid URL", Cause: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &Error{URL: postingURL, Message: "unsupported URL scheme " + parsed.Scheme}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, postingURL, nil)
	if err != nil {
		return "", &Error{URL: postingURL, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	client := &http.Client{Timeout: DefaultTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: postingURL, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: postingURL, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", &Error{URL: postingURL, Message: "failed to read body", Cause: err}
	}
	return string(body), nil
}

// JobDescription fetches a posting URL and returns its readable text,
// falling back to headless-browser rendering when the static HTML carries
// too little content.
func JobDescription(ctx context.Context, postingURL string) (string, error) {
	html, err := FetchHTML(ctx, postingURL)
	if err != nil {
		return "", err
	}

	text, err := ExtractText(html)
	if err != nil {
		return "", &Error{URL: postingURL, Message: "failed to extract text", Cause: err}
	}

	if len(strings.TrimSpace(text)) >= minContentLength {
		return text, nil
	}

	rendered, err := renderWithBrowser(ctx, postingURL)
	if err != nil {
		// The static text may still be usable even when Chrome is absent.
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
		return "", err
	}

	renderedText, err := ExtractText(rendered)
	if err != nil {
		return "", &Error{URL: postingURL, Message: "failed to extract rendered text", Cause: err}
	}
	return renderedText, nil
}
