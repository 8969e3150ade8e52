// Package domain defines the core types for link enrichment and AI search.
package domain

// LinkPreview holds the structured fields extracted from a fetched webpage.
// It is ephemeral, produced per request and never persisted.
type LinkPreview struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	BodyText    string `json:"body_text"`
}

// VideoSummary holds the structured summary of a video.
// Parsed reports whether the backend response contained the expected
// labeled sections; when false, Summary carries the raw response text.
type VideoSummary struct {
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
	Parsed  bool     `json:"-"`
}

// EnrichedLink is the response contract for an enriched URL.
type EnrichedLink struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       *string  `json:"image"`
	Summary     string   `json:"summary"`
	Tags        []string `json:"tags,omitempty"`
}

// ExtractLinkRequest represents a link enrichment request.
type ExtractLinkRequest struct {
	URL string `json:"url"`
}

// ExtractLinkResponse represents a link enrichment response.
type ExtractLinkResponse struct {
	Success bool          `json:"success"`
	Data    *EnrichedLink `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
}
