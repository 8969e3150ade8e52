// Package aisearch implements batched AI relevance search over candidate
// items with free-text notes.
package aisearch

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmt-genius/synapcity-hub/internal/domain"
	"github.com/jmt-genius/synapcity-hub/internal/logger"
	"github.com/jmt-genius/synapcity-hub/internal/metrics"
)

// jsonArrayPattern locates the first bracketed array-like substring in a
// backend response.
var jsonArrayPattern = regexp.MustCompile(`\[.*?\]`)

// TextGenerator produces free text from a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Searcher determines which candidate items' notes are relevant to a query
// by delegating semantic judgment to a generative-AI backend in fixed-size
// batches.
type Searcher struct {
	generator TextGenerator
	logger    logger.Logger
	metrics   *metrics.Metrics
	batchSize int
}

// NewSearcher creates a new relevance searcher.
func NewSearcher(generator TextGenerator, batchSize int, m *metrics.Metrics, log logger.Logger) *Searcher {
	return &Searcher{
		generator: generator,
		logger:    log,
		metrics:   m,
		batchSize: batchSize,
	}
}

// Search returns the IDs of items whose notes the backend judges relevant to
// the query. Items without usable notes are filtered out before batching.
// A failed batch is logged and skipped; the remaining batches still run.
func (s *Searcher) Search(ctx context.Context, query string, items []domain.CandidateItem) ([]string, error) {
	eligible := domain.FilterWithNotes(items)

	s.logger.Info("Starting AI search",
		logger.String("query", query),
		logger.Int("items", len(items)),
		logger.Int("eligible", len(eligible)),
	)

	matchingIDs := []string{}

	for start := 0; start < len(eligible); start += s.batchSize {
		end := start + s.batchSize
		if end > len(eligible) {
			end = len(eligible)
		}
		batch := eligible[start:end]
		batchNum := start/s.batchSize + 1

		matches, err := s.searchBatch(ctx, query, batch)
		if err != nil {
			if ctx.Err() != nil {
				return matchingIDs, ctx.Err()
			}
			s.metrics.SearchBatchesTotal.WithLabelValues("error").Inc()
			s.logger.Error("Batch failed, continuing with next batch",
				logger.Int("batch", batchNum),
				logger.Error(err),
			)
			continue
		}

		s.metrics.SearchBatchesTotal.WithLabelValues("ok").Inc()
		matchingIDs = append(matchingIDs, matches...)

		s.logger.Debug("Batch completed",
			logger.Int("batch", batchNum),
			logger.Int("matches", len(matches)),
		)
	}

	s.logger.Info("AI search completed",
		logger.String("query", query),
		logger.Int("total_matches", len(matchingIDs)),
	)

	return matchingIDs, nil
}

// searchBatch runs one backend call for a batch and returns the validated
// matching IDs.
func (s *Searcher) searchBatch(ctx context.Context, query string, batch []domain.CandidateItem) ([]string, error) {
	response, err := s.generator.GenerateText(ctx, buildBatchPrompt(query, batch))
	if err != nil {
		return nil, err
	}

	candidates := parseBatchResponse(strings.TrimSpace(response), batch)

	// Discard IDs not present in this batch, the backend is untrusted.
	valid := make([]string, 0, len(candidates))
	for _, id := range candidates {
		for _, item := range batch {
			if item.ID == id {
				valid = append(valid, id)
				break
			}
		}
	}
	return valid, nil
}

// parseBatchResponse extracts matching IDs from a backend response. It
// prefers the first JSON array in the text; if that array fails to parse,
// it falls back to case-insensitive substring containment per item ID.
func parseBatchResponse(response string, batch []domain.CandidateItem) []string {
	m := jsonArrayPattern.FindString(response)
	if m != "" {
		var ids []string
		if err := json.Unmarshal([]byte(m), &ids); err == nil {
			return ids
		}
	}

	lower := strings.ToLower(response)
	ids := []string{}
	for _, item := range batch {
		if strings.Contains(lower, strings.ToLower(item.ID)) {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// buildBatchPrompt enumerates one batch's items and the query, instructing
// the backend to answer with only a JSON array of matching IDs.
func buildBatchPrompt(query string, batch []domain.CandidateItem) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are analyzing items to find which ones relate to the user's search query.\n\n")
	fmt.Fprintf(&sb, "Search Query: %q\n\n", query)
	sb.WriteString("Items to analyze:\n")

	for i, item := range batch {
		title := item.Title
		if title == "" {
			title = "Untitled"
		}
		notes := item.Notes
		if notes == "" {
			notes = "No notes available"
		}
		fmt.Fprintf(&sb, "\nItem %d:\n- ID: %s\n- Title: %s\n- Notes: %s\n", i+1, item.ID, title, notes)
	}

	sb.WriteString(`
For each item, determine if the notes content relates to or answers the search query. Consider:
- Direct matches in the notes
- Semantic similarity
- Conceptual relationships
- Whether the notes provide information relevant to the query

Respond with ONLY a JSON array of item IDs that match the query. If no items match, return an empty array [].

Example response format: ["id1", "id2"] or []

Do not include any explanation, only the JSON array.`)

	return sb.String()
}
