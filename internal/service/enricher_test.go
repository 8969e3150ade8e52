package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmt-genius/synapcity-hub/internal/cache"
	"github.com/jmt-genius/synapcity-hub/internal/domain"
	"github.com/jmt-genius/synapcity-hub/internal/logger"
	"github.com/jmt-genius/synapcity-hub/internal/metrics"
	"github.com/jmt-genius/synapcity-hub/internal/service"
)

type fakeFetcher struct {
	preview *domain.LinkPreview
	err     error
	calls   int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (*domain.LinkPreview, error) {
	f.calls++
	return f.preview, f.err
}

type fakeVideoSummarizer struct {
	summary domain.VideoSummary
	err     error
	calls   int
}

func (f *fakeVideoSummarizer) SummarizeVideo(_ context.Context, _ string) (domain.VideoSummary, error) {
	f.calls++
	return f.summary, f.err
}

type fakeTextSummarizer struct {
	summary string
	err     error
	calls   int
}

func (f *fakeTextSummarizer) SummarizeText(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.summary, f.err
}

type fakeCache struct {
	entries map[string]*domain.EnrichedLink
	sets    int
}

func (f *fakeCache) Get(_ context.Context, url string) (*domain.EnrichedLink, error) {
	if link, ok := f.entries[url]; ok {
		return link, nil
	}
	return nil, cache.ErrMiss
}

func (f *fakeCache) Set(_ context.Context, url string, link *domain.EnrichedLink) error {
	f.sets++
	if f.entries == nil {
		f.entries = map[string]*domain.EnrichedLink{}
	}
	f.entries[url] = link
	return nil
}

type deps struct {
	fetcher *fakeFetcher
	videos  *fakeVideoSummarizer
	texts   *fakeTextSummarizer
	cache   *fakeCache
}

func newEnricher(t *testing.T, d *deps) *service.Enricher {
	t.Helper()
	var linkCache service.LinkCache
	if d.cache != nil {
		linkCache = d.cache
	}
	return service.NewEnricher(
		d.fetcher,
		d.videos,
		d.texts,
		linkCache,
		metrics.New(prometheus.NewRegistry()),
		logger.NewNop(),
	)
}

func defaultDeps() *deps {
	return &deps{
		fetcher: &fakeFetcher{preview: &domain.LinkPreview{Title: "T"}},
		videos:  &fakeVideoSummarizer{},
		texts:   &fakeTextSummarizer{summary: "generated summary"},
	}
}

func TestEnrichInvalidURLMakesNoCalls(t *testing.T) {
	tests := []string{"", "not-a-url", "example.com/missing-scheme", "http://"}

	for _, rawURL := range tests {
		t.Run("url "+rawURL, func(t *testing.T) {
			d := defaultDeps()
			_, err := newEnricher(t, d).Enrich(context.Background(), rawURL)

			var valErr *service.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, "Invalid URL format", valErr.Message)
			assert.Zero(t, d.fetcher.calls)
			assert.Zero(t, d.videos.calls)
			assert.Zero(t, d.texts.calls)
		})
	}
}

func TestEnrichVideo(t *testing.T) {
	d := defaultDeps()
	d.videos.summary = domain.VideoSummary{
		Title:   "Video Title",
		Tags:    []string{"go", "testing"},
		Summary: "what the video covers",
		Parsed:  true,
	}

	link, err := newEnricher(t, d).Enrich(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "Video Title", link.Title)
	assert.Equal(t, "YouTube video summary", link.Description)
	assert.Equal(t, "what the video covers", link.Summary)
	assert.Equal(t, []string{"go", "testing"}, link.Tags)
	require.NotNil(t, link.Image)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", *link.Image)
	assert.Equal(t, 1, d.videos.calls)
	assert.Zero(t, d.fetcher.calls)
}

func TestEnrichVideoSummarizationFailureDegrades(t *testing.T) {
	d := defaultDeps()
	d.videos.err = errors.New("quota exceeded")

	link, err := newEnricher(t, d).Enrich(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "YouTube Video - dQw4w9WgXcQ", link.Title)
	assert.Equal(t, "Unable to generate summary for this video.", link.Summary)
	assert.Empty(t, link.Tags)
}

func TestEnrichVideoWithoutID(t *testing.T) {
	d := defaultDeps()

	_, err := newEnricher(t, d).Enrich(context.Background(), "https://www.youtube.com/feed/subscriptions")

	var valErr *service.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Could not extract video ID from URL", valErr.Message)
	assert.Zero(t, d.videos.calls)
}

func TestEnrichWebpageLongBodySummarized(t *testing.T) {
	d := defaultDeps()
	d.fetcher.preview = &domain.LinkPreview{
		Title:       "Article",
		Description: "meta description",
		Image:       "https://example.com/img.png",
		BodyText:    strings.Repeat("content ", 30),
	}

	link, err := newEnricher(t, d).Enrich(context.Background(), "https://example.com/article")
	require.NoError(t, err)

	assert.Equal(t, "Article", link.Title)
	assert.Equal(t, "generated summary", link.Summary)
	assert.Equal(t, "meta description", link.Description)
	require.NotNil(t, link.Image)
	assert.Equal(t, "https://example.com/img.png", *link.Image)
	assert.Nil(t, link.Tags)
	assert.Equal(t, 1, d.texts.calls)
}

func TestEnrichWebpageShortBodyUsesDescription(t *testing.T) {
	d := defaultDeps()
	d.fetcher.preview = &domain.LinkPreview{
		Title:       "Short",
		Description: "just the description",
		BodyText:    "tiny",
	}

	link, err := newEnricher(t, d).Enrich(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, "just the description", link.Summary)
	assert.Zero(t, d.texts.calls)
	assert.Nil(t, link.Image)
}

func TestEnrichWebpageSummarizationFailureDegrades(t *testing.T) {
	d := defaultDeps()
	d.fetcher.preview = &domain.LinkPreview{
		Title:       "Article",
		Description: "fallback description",
		BodyText:    strings.Repeat("content ", 30),
	}
	d.texts.err = errors.New("backend down")

	link, err := newEnricher(t, d).Enrich(context.Background(), "https://example.com/article")
	require.NoError(t, err)
	assert.Equal(t, "fallback description", link.Summary)
}

func TestEnrichWebpageFetchFailure(t *testing.T) {
	d := defaultDeps()
	d.fetcher.preview = nil
	d.fetcher.err = errors.New("connection refused")

	_, err := newEnricher(t, d).Enrich(context.Background(), "https://unreachable.example.com")
	require.Error(t, err)

	var valErr *service.ValidationError
	assert.False(t, errors.As(err, &valErr))
}

func TestEnrichCacheHitSkipsPipeline(t *testing.T) {
	cached := &domain.EnrichedLink{URL: "https://example.com", Title: "Cached"}
	d := defaultDeps()
	d.cache = &fakeCache{entries: map[string]*domain.EnrichedLink{
		"https://example.com": cached,
	}}

	link, err := newEnricher(t, d).Enrich(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, cached, link)
	assert.Zero(t, d.fetcher.calls)
	assert.Zero(t, d.texts.calls)
}

func TestEnrichStoresResultInCache(t *testing.T) {
	d := defaultDeps()
	d.cache = &fakeCache{}
	d.fetcher.preview = &domain.LinkPreview{Title: "Fresh", Description: "d"}

	_, err := newEnricher(t, d).Enrich(context.Background(), "https://example.com/fresh")
	require.NoError(t, err)

	assert.Equal(t, 1, d.cache.sets)
	assert.Contains(t, d.cache.entries, "https://example.com/fresh")
}
