package ai

import (
	"context"
	"time"

	"google.golang.org/genai"

	"github.com/jmt-genius/synapcity-hub/internal/config"
	"github.com/jmt-genius/synapcity-hub/internal/domain"
	"github.com/jmt-genius/synapcity-hub/internal/logger"
	"github.com/jmt-genius/synapcity-hub/internal/youtube"
)

const videoSummaryPrompt = `Please watch and analyze this YouTube video.

Provide the following information in a structured format:

TITLE: [Provide a clear, descriptive title for this video (max 100 characters)]

TAGS: [Provide 5-10 relevant tags separated by commas (e.g., technology, tutorial, coding, web development)]

SUMMARY:
Provide a comprehensive and well-structured summary that includes:

1. Main Topic

2. Key Points (3-5)

3. Important Details

4. Takeaways

Format your response exactly as shown above with TITLE:, TAGS:, and SUMMARY: labels.`

// GeminiClient talks to the Gemini API for video understanding and free-text
// generation.
type GeminiClient struct {
	client  *genai.Client
	logger  logger.Logger
	model   string
	timeout time.Duration
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, log logger.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiClient{
		client:  client,
		logger:  log,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// SummarizeVideo asks Gemini to watch a YouTube video, referenced by URL
// rather than raw bytes, and returns its structured summary. Unparseable
// responses degrade to the raw text, they never fail the call.
func (g *GeminiClient) SummarizeVideo(ctx context.Context, videoID string) (domain.VideoSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	videoURL := youtube.CanonicalURL(videoID)

	g.logger.Info("Summarizing video",
		logger.String("video_id", videoID),
		logger.String("video_url", videoURL),
	)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			{FileData: &genai.FileData{FileURI: videoURL, MIMEType: "video/mp4"}},
			{Text: videoSummaryPrompt},
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return domain.VideoSummary{}, &SummarizationError{Backend: "gemini", Err: err}
	}

	summary := ParseVideoSummary(videoID, resp.Text())

	g.logger.Info("Video summary generated",
		logger.String("video_id", videoID),
		logger.String("title", summary.Title),
		logger.Int("tags", len(summary.Tags)),
		logger.Bool("parsed", summary.Parsed),
	)

	return summary, nil
}

// GenerateText sends a plain text prompt to Gemini and returns the response
// text.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &SummarizationError{Backend: "gemini", Err: err}
	}

	return resp.Text(), nil
}
