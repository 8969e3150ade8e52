// Package fetcher retrieves webpages and extracts structured preview fields.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmt-genius/synapcity-hub/internal/config"
	"github.com/jmt-genius/synapcity-hub/internal/domain"
	"github.com/jmt-genius/synapcity-hub/internal/httpx"
	"github.com/jmt-genius/synapcity-hub/internal/logger"
)

const (
	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 10 << 20

	// noiseSelectors are removed from the document before body text extraction.
	noiseSelectors = "script, style, nav, footer, header, aside, .advertisement, .ad, .sidebar"

	// contentSelectors are tried in order to locate the main content container.
	contentSelectors = "main, article, .content, .post, .article"

	// readabilityThreshold is the body text length below which the
	// readability fallback is attempted.
	readabilityThreshold = 200
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// FetchError indicates the content source was unreachable or returned a
// non-success status.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher fetches webpages and extracts link previews.
type Fetcher struct {
	logger logger.Logger
	client *http.Client
	cfg    config.FetchConfig
}

// NewFetcher creates a new webpage fetcher.
func NewFetcher(cfg config.FetchConfig, log logger.Logger) *Fetcher {
	return &Fetcher{
		logger: log,
		client: httpx.NewClient(&httpx.ClientConfig{
			Timeout: cfg.Timeout,
		}),
		cfg: cfg,
	}
}

// Fetch retrieves a webpage and extracts its title, description, image and
// cleaned body text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.LinkPreview, error) {
	pageURL, err := f.validateRequestURL(ctx, rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	f.logger.Info("Fetching webpage",
		logger.String("url", rawURL),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	preview := &domain.LinkPreview{
		Title:       extractTitle(doc),
		Description: extractDescription(doc),
		Image:       extractImage(doc, pageURL),
	}

	doc.Find(noiseSelectors).Remove()
	preview.BodyText = extractBodyText(doc, f.cfg.MaxBodyChars)

	if len(preview.BodyText) < readabilityThreshold {
		if title, text := applyReadabilityFallback(string(body), rawURL); text != "" {
			f.logger.Debug("Using readability fallback",
				logger.String("url", rawURL),
				logger.Int("selector_text_len", len(preview.BodyText)),
				logger.Int("readability_text_len", len(text)),
			)
			preview.BodyText = truncate(normalizeWhitespace(text), f.cfg.MaxBodyChars)
			if preview.Title == defaultTitle && title != "" {
				preview.Title = title
			}
		}
	}

	f.logger.Info("Webpage fetched",
		logger.String("url", rawURL),
		logger.String("title", preview.Title),
		logger.Int("body_text_len", len(preview.BodyText)),
	)

	return preview, nil
}

const defaultTitle = "Untitled"

// extractTitle extracts the page title (priority order).
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if ogTitle, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && strings.TrimSpace(ogTitle) != "" {
		return strings.TrimSpace(ogTitle)
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return defaultTitle
}

// extractDescription extracts the page description (priority order).
func extractDescription(doc *goquery.Document) string {
	if ogDesc, exists := doc.Find("meta[property='og:description']").Attr("content"); exists && strings.TrimSpace(ogDesc) != "" {
		return strings.TrimSpace(ogDesc)
	}
	if desc, exists := doc.Find("meta[name='description']").Attr("content"); exists && strings.TrimSpace(desc) != "" {
		return strings.TrimSpace(desc)
	}
	return ""
}

// extractImage extracts the preview image URL, resolved to absolute form.
func extractImage(doc *goquery.Document, pageURL *url.URL) string {
	candidates := []string{}
	if ogImage, exists := doc.Find("meta[property='og:image']").Attr("content"); exists {
		candidates = append(candidates, ogImage)
	}
	if twImage, exists := doc.Find("meta[name='twitter:image']").Attr("content"); exists {
		candidates = append(candidates, twImage)
	}
	if imgSrc, exists := doc.Find("img").First().Attr("src"); exists {
		candidates = append(candidates, imgSrc)
	}

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		resolved, err := pageURL.Parse(candidate)
		if err != nil {
			continue
		}
		return resolved.String()
	}
	return ""
}

// extractBodyText extracts cleaned body text, preferring the main content
// container and falling back to the whole document body.
func extractBodyText(doc *goquery.Document, maxChars int) string {
	text := ""
	if main := doc.Find(contentSelectors).First(); main.Length() > 0 {
		text = main.Text()
	} else {
		text = doc.Find("body").Text()
	}
	return truncate(normalizeWhitespace(text), maxChars)
}

// normalizeWhitespace collapses whitespace runs to single spaces and trims.
func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// truncate bounds a string to at most maxChars characters.
func truncate(s string, maxChars int) string {
	if maxChars > 0 && len(s) > maxChars {
		return s[:maxChars]
	}
	return s
}
