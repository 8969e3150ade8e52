// Package service implements the link enrichment orchestrator.
package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/jmt-genius/synapcity-hub/internal/ai"
	"github.com/jmt-genius/synapcity-hub/internal/cache"
	"github.com/jmt-genius/synapcity-hub/internal/domain"
	"github.com/jmt-genius/synapcity-hub/internal/logger"
	"github.com/jmt-genius/synapcity-hub/internal/metrics"
	"github.com/jmt-genius/synapcity-hub/internal/youtube"
)

// minBodyChars is the body text length above which a webpage is summarized
// by the text backend instead of falling back to its meta description.
const minBodyChars = 100

// videoDescription is the fixed description attached to video enrichments.
const videoDescription = "YouTube video summary"

// ValidationError indicates malformed caller input. It is surfaced as a
// 400-equivalent and never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ContentFetcher retrieves a webpage and extracts preview fields.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (*domain.LinkPreview, error)
}

// VideoSummarizer produces a structured summary for a video ID.
type VideoSummarizer interface {
	SummarizeVideo(ctx context.Context, videoID string) (domain.VideoSummary, error)
}

// TextSummarizer produces a free-text summary of webpage body text.
type TextSummarizer interface {
	SummarizeText(ctx context.Context, bodyText, sourceURL string) (string, error)
}

// LinkCache stores enrichment results keyed by URL.
type LinkCache interface {
	Get(ctx context.Context, url string) (*domain.EnrichedLink, error)
	Set(ctx context.Context, url string, link *domain.EnrichedLink) error
}

// Enricher turns a bare URL into an enriched link record, degrading
// gracefully when non-critical stages fail.
type Enricher struct {
	fetcher   ContentFetcher
	videos    VideoSummarizer
	texts     TextSummarizer
	linkCache LinkCache
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewEnricher creates a new enrichment orchestrator. The cache is optional;
// pass nil to disable caching.
func NewEnricher(
	fetcher ContentFetcher,
	videos VideoSummarizer,
	texts TextSummarizer,
	linkCache LinkCache,
	m *metrics.Metrics,
	log logger.Logger,
) *Enricher {
	return &Enricher{
		fetcher:   fetcher,
		videos:    videos,
		texts:     texts,
		linkCache: linkCache,
		logger:    log,
		metrics:   m,
	}
}

// Enrich classifies a URL, fetches or summarizes its content and returns a
// best-effort enriched link. It fails only on invalid input or when the
// webpage fetch itself fails.
func (e *Enricher) Enrich(ctx context.Context, rawURL string) (*domain.EnrichedLink, error) {
	if !isValidURL(rawURL) {
		e.logger.Warn("Rejecting invalid URL",
			logger.String("url", rawURL),
		)
		return nil, &ValidationError{Message: "Invalid URL format"}
	}

	if cached := e.cacheGet(ctx, rawURL); cached != nil {
		return cached, nil
	}

	start := time.Now()

	classification := youtube.Classify(rawURL)
	if classification.IsVideo {
		if classification.VideoID == "" {
			e.logger.Warn("Could not extract video ID",
				logger.String("url", rawURL),
			)
			return nil, &ValidationError{Message: "Could not extract video ID from URL"}
		}
		link := e.enrichVideo(ctx, rawURL, classification.VideoID)
		e.metrics.EnrichmentDuration.WithLabelValues("video").Observe(time.Since(start).Seconds())
		e.cacheSet(ctx, rawURL, link)
		return link, nil
	}

	link, err := e.enrichWebpage(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	e.metrics.EnrichmentDuration.WithLabelValues("webpage").Observe(time.Since(start).Seconds())
	e.cacheSet(ctx, rawURL, link)
	return link, nil
}

// enrichVideo builds a video enrichment, falling back to placeholder fields
// when summarization fails.
func (e *Enricher) enrichVideo(ctx context.Context, rawURL, videoID string) *domain.EnrichedLink {
	e.logger.Info("Enriching video link",
		logger.String("url", rawURL),
		logger.String("video_id", videoID),
	)

	summary := domain.VideoSummary{
		Title:   ai.PlaceholderTitle(videoID),
		Tags:    []string{},
		Summary: ai.PlaceholderSummary,
	}

	outcome := "success"
	result, err := e.videos.SummarizeVideo(ctx, videoID)
	if err != nil {
		outcome = "degraded"
		e.logger.Error("Video summarization failed, using placeholders",
			logger.String("video_id", videoID),
			logger.Error(err),
		)
	} else {
		summary = result
	}
	e.metrics.EnrichmentsTotal.WithLabelValues("video", outcome).Inc()

	thumbnail := youtube.ThumbnailURL(videoID)
	return &domain.EnrichedLink{
		URL:         rawURL,
		Title:       summary.Title,
		Description: videoDescription,
		Image:       &thumbnail,
		Summary:     summary.Summary,
		Tags:        summary.Tags,
	}
}

// enrichWebpage fetches a webpage and summarizes its body text, degrading
// to the page description when the text is short or summarization fails.
func (e *Enricher) enrichWebpage(ctx context.Context, rawURL string) (*domain.EnrichedLink, error) {
	e.logger.Info("Enriching webpage link",
		logger.String("url", rawURL),
		logger.String("domain", domain.Domain(rawURL)),
	)

	preview, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		e.metrics.EnrichmentsTotal.WithLabelValues("webpage", "error").Inc()
		e.logger.Error("Webpage fetch failed",
			logger.String("url", rawURL),
			logger.Error(err),
		)
		return nil, err
	}

	outcome := "success"
	summary := preview.Description
	if len(preview.BodyText) > minBodyChars {
		generated, sumErr := e.texts.SummarizeText(ctx, preview.BodyText, rawURL)
		if sumErr != nil {
			outcome = "degraded"
			e.logger.Error("Text summarization failed, using description",
				logger.String("url", rawURL),
				logger.Error(sumErr),
			)
		} else {
			summary = generated
		}
	}
	e.metrics.EnrichmentsTotal.WithLabelValues("webpage", outcome).Inc()

	link := &domain.EnrichedLink{
		URL:         rawURL,
		Title:       preview.Title,
		Description: preview.Description,
		Summary:     summary,
	}
	if preview.Image != "" {
		image := preview.Image
		link.Image = &image
	}
	return link, nil
}

func (e *Enricher) cacheGet(ctx context.Context, rawURL string) *domain.EnrichedLink {
	if e.linkCache == nil {
		return nil
	}
	link, err := e.linkCache.Get(ctx, rawURL)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			e.logger.Warn("Cache lookup failed",
				logger.String("url", rawURL),
				logger.Error(err),
			)
		}
		e.metrics.CacheMisses.Inc()
		return nil
	}
	e.metrics.CacheHits.Inc()
	e.logger.Debug("Cache hit",
		logger.String("url", rawURL),
	)
	return link
}

func (e *Enricher) cacheSet(ctx context.Context, rawURL string, link *domain.EnrichedLink) {
	if e.linkCache == nil {
		return
	}
	if err := e.linkCache.Set(ctx, rawURL, link); err != nil {
		e.logger.Warn("Cache store failed",
			logger.String("url", rawURL),
			logger.Error(err),
		)
	}
}

// isValidURL reports whether a raw URL is absolute and well formed.
func isValidURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && u.Scheme != "" && u.Host != ""
}
