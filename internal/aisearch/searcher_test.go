package aisearch_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmt-genius/synapcity-hub/internal/aisearch"
	"github.com/jmt-genius/synapcity-hub/internal/domain"
	"github.com/jmt-genius/synapcity-hub/internal/logger"
	"github.com/jmt-genius/synapcity-hub/internal/metrics"
)

// scriptedGenerator returns canned responses in call order and records the
// prompts it was given.
type scriptedGenerator struct {
	responses []string
	errs      []error
	prompts   []string
}

func (g *scriptedGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	call := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	if call < len(g.errs) && g.errs[call] != nil {
		return "", g.errs[call]
	}
	if call < len(g.responses) {
		return g.responses[call], nil
	}
	return "[]", nil
}

func candidates(n int) []domain.CandidateItem {
	items := make([]domain.CandidateItem, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, domain.CandidateItem{
			ID:    fmt.Sprintf("item-%d", i),
			Title: fmt.Sprintf("Title %d", i),
			Notes: fmt.Sprintf("notes for item %d", i),
		})
	}
	return items
}

func TestSearchBatchesOfThree(t *testing.T) {
	gen := &scriptedGenerator{
		responses: []string{
			`["item-1", "item-3"]`,
			`[]`,
			`["item-7"]`,
		},
	}
	s := aisearch.NewSearcher(gen, 3, metrics.New(prometheus.NewRegistry()), logger.NewNop())

	ids, err := s.Search(context.Background(), "X", candidates(7))
	require.NoError(t, err)

	// 7 eligible items produce batches of 3, 3 and 1
	assert.Len(t, gen.prompts, 3)
	assert.Equal(t, []string{"item-1", "item-3", "item-7"}, ids)
}

func TestSearchDiscardsForeignIDs(t *testing.T) {
	gen := &scriptedGenerator{
		responses: []string{
			// item-4 belongs to the second batch, hallucinated belongs to none
			`["item-2", "item-4", "hallucinated"]`,
			`[]`,
			`[]`,
		},
	}
	s := aisearch.NewSearcher(gen, 3, metrics.New(prometheus.NewRegistry()), logger.NewNop())

	ids, err := s.Search(context.Background(), "X", candidates(7))
	require.NoError(t, err)
	assert.Equal(t, []string{"item-2"}, ids)
}

func TestSearchSkipsItemsWithoutNotes(t *testing.T) {
	items := []domain.CandidateItem{
		{ID: "a", Title: "A", Notes: "usable"},
		{ID: "b", Title: "B", Notes: "   "},
		{ID: "c", Title: "C"},
	}
	gen := &scriptedGenerator{responses: []string{`["a"]`}}
	s := aisearch.NewSearcher(gen, 3, metrics.New(prometheus.NewRegistry()), logger.NewNop())

	ids, err := s.Search(context.Background(), "X", items)
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, ids)
	require.Len(t, gen.prompts, 1)
	assert.NotContains(t, gen.prompts[0], "ID: b")
	assert.NotContains(t, gen.prompts[0], "ID: c")
}

func TestSearchNoEligibleItemsMakesNoCalls(t *testing.T) {
	items := []domain.CandidateItem{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B", Notes: " \t"},
	}
	gen := &scriptedGenerator{}
	s := aisearch.NewSearcher(gen, 3, metrics.New(prometheus.NewRegistry()), logger.NewNop())

	ids, err := s.Search(context.Background(), "X", items)
	require.NoError(t, err)

	assert.Empty(t, ids)
	assert.Empty(t, gen.prompts)
}

func TestSearchFailedBatchIsSkipped(t *testing.T) {
	gen := &scriptedGenerator{
		responses: []string{``, `["item-4"]`, `["item-7"]`},
		errs:      []error{errors.New("backend unavailable"), nil, nil},
	}
	s := aisearch.NewSearcher(gen, 3, metrics.New(prometheus.NewRegistry()), logger.NewNop())

	ids, err := s.Search(context.Background(), "X", candidates(7))
	require.NoError(t, err)

	assert.Len(t, gen.prompts, 3)
	assert.Equal(t, []string{"item-4", "item-7"}, ids)
}

func TestSearchSubstringFallback(t *testing.T) {
	gen := &scriptedGenerator{
		responses: []string{
			"The matching items are ITEM-1 and item-3, the rest are unrelated.",
		},
	}
	s := aisearch.NewSearcher(gen, 3, metrics.New(prometheus.NewRegistry()), logger.NewNop())

	ids, err := s.Search(context.Background(), "X", candidates(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"item-1", "item-3"}, ids)
}

func TestSearchPromptContents(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{`[]`}}
	s := aisearch.NewSearcher(gen, 3, metrics.New(prometheus.NewRegistry()), logger.NewNop())

	_, err := s.Search(context.Background(), "kubernetes networking", []domain.CandidateItem{
		{ID: "x1", Title: "Cluster notes", Notes: "CNI plugins overview"},
	})
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, `"kubernetes networking"`)
	assert.Contains(t, prompt, "ID: x1")
	assert.Contains(t, prompt, "Title: Cluster notes")
	assert.Contains(t, prompt, "Notes: CNI plugins overview")
	assert.Contains(t, prompt, "ONLY a JSON array")
}

func TestSearchCancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &scriptedGenerator{
		errs: []error{context.Canceled},
	}
	s := aisearch.NewSearcher(gen, 3, metrics.New(prometheus.NewRegistry()), logger.NewNop())

	_, err := s.Search(ctx, "X", candidates(7))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, gen.prompts, 1)
}
