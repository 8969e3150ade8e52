package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jmt-genius/synapcity-hub/internal/config"
	"github.com/jmt-genius/synapcity-hub/internal/logger"
)

const textSummaryPrompt = `Please provide a concise summary of the following webpage content. Focus on the main points, key information, and important details. Keep the summary informative but brief (2-4 paragraphs, around 300-500 words).

URL: %s

Content:
%s

Please provide a well-structured summary that captures the essence of the content.`

// ClaudeClient summarizes webpage text via the Anthropic messages API.
type ClaudeClient struct {
	client    anthropic.Client
	logger    logger.Logger
	model     string
	maxTokens int64
	timeout   time.Duration
}

// NewClaudeClient creates a new Claude text-summarization client.
func NewClaudeClient(cfg config.AnthropicConfig, log logger.Logger) *ClaudeClient {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &ClaudeClient{
		client:    anthropic.NewClient(opts...),
		logger:    log,
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
		timeout:   cfg.Timeout,
	}
}

// SummarizeText produces a free-text summary of webpage body text.
func (c *ClaudeClient) SummarizeText(ctx context.Context, bodyText, sourceURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Info("Summarizing webpage text",
		logger.String("url", sourceURL),
		logger.Int("body_text_len", len(bodyText)),
	)

	prompt := fmt.Sprintf(textSummaryPrompt, sourceURL, bodyText)

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", &SummarizationError{Backend: "claude", Err: err}
	}

	parts := make([]string, 0, len(msg.Content))
	for _, block := range msg.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}

	summary := strings.TrimSpace(strings.Join(parts, "\n"))

	c.logger.Info("Webpage summary generated",
		logger.String("url", sourceURL),
		logger.Int("summary_len", len(summary)),
	)

	return summary, nil
}
