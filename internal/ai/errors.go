// Package ai wraps the generative-AI backends used for summarization and
// relevance search.
package ai

import "fmt"

// SummarizationError indicates a transport or backend failure while calling
// a generative-AI backend. Parse failures never produce this error.
type SummarizationError struct {
	Backend string
	Err     error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("%s summarization failed: %v", e.Backend, e.Err)
}

func (e *SummarizationError) Unwrap() error {
	return e.Err
}
