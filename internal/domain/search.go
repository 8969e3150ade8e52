package domain

import "strings"

// CandidateItem is a caller-supplied record considered for relevance matching.
// Only the ID, title and notes travel to the AI backend.
type CandidateItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Notes string `json:"notes,omitempty"`
}

// HasNotes reports whether the item carries non-whitespace notes and is
// therefore eligible for relevance matching.
func (c CandidateItem) HasNotes() bool {
	return strings.TrimSpace(c.Notes) != ""
}

// FilterWithNotes returns the items eligible for matching, preserving order.
func FilterWithNotes(items []CandidateItem) []CandidateItem {
	eligible := make([]CandidateItem, 0, len(items))
	for _, item := range items {
		if item.HasNotes() {
			eligible = append(eligible, item)
		}
	}
	return eligible
}

// AISearchRequest represents a relevance search request.
type AISearchRequest struct {
	Query string          `json:"query"`
	Items []CandidateItem `json:"items"`
}

// AISearchResponse represents a relevance search response.
type AISearchResponse struct {
	Success     bool     `json:"success"`
	MatchingIDs []string `json:"matchingIds"`
	Error       string   `json:"error,omitempty"`
}
