// Package api exposes the HTTP surface of the synapcity-hub service.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jmt-genius/synapcity-hub/internal/domain"
	"github.com/jmt-genius/synapcity-hub/internal/logger"
	"github.com/jmt-genius/synapcity-hub/internal/metrics"
	"github.com/jmt-genius/synapcity-hub/internal/service"
)

// Enricher turns a URL into an enriched link record.
type Enricher interface {
	Enrich(ctx context.Context, url string) (*domain.EnrichedLink, error)
}

// Searcher returns the IDs of candidate items relevant to a query.
type Searcher interface {
	Search(ctx context.Context, query string, items []domain.CandidateItem) ([]string, error)
}

// ErrorResponse is the failure envelope returned by API endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handler holds HTTP request handlers.
type Handler struct {
	enricher Enricher
	searcher Searcher
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewHandler creates a new handler instance.
func NewHandler(enricher Enricher, searcher Searcher, m *metrics.Metrics, log logger.Logger) *Handler {
	return &Handler{
		enricher: enricher,
		searcher: searcher,
		metrics:  m,
		logger:   log,
	}
}

// ExtractLink handles POST /api/extract-link.
func (h *Handler) ExtractLink(c *gin.Context) {
	var req domain.ExtractLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		h.logger.Warn("Extract link request without URL")
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	h.logger.Info("Extract link request",
		logger.String("url", req.URL),
	)

	link, err := h.enricher.Enrich(c.Request.Context(), req.URL)
	if err != nil {
		var valErr *service.ValidationError
		if errors.As(err, &valErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": valErr.Message})
			return
		}

		h.logger.Error("Link enrichment failed",
			logger.String("url", req.URL),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, domain.ExtractLinkResponse{
		Success: true,
		Data:    link,
	})
}

// AISearch handles POST /api/ai-search.
func (h *Handler) AISearch(c *gin.Context) {
	var req domain.AISearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid AI search request body",
			logger.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items array is required"})
		return
	}

	h.metrics.SearchesTotal.Inc()

	// Items without notes never match; answer immediately without any
	// backend call.
	if len(domain.FilterWithNotes(req.Items)) == 0 {
		c.JSON(http.StatusOK, domain.AISearchResponse{
			Success:     true,
			MatchingIDs: []string{},
		})
		return
	}

	matchingIDs, err := h.searcher.Search(c.Request.Context(), query, req.Items)
	if err != nil {
		h.logger.Error("AI search failed",
			logger.String("query", query),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to perform AI search",
		})
		return
	}

	h.metrics.SearchMatches.Observe(float64(len(matchingIDs)))

	c.JSON(http.StatusOK, domain.AISearchResponse{
		Success:     true,
		MatchingIDs: matchingIDs,
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Message: "Server is running",
	})
}
