package ai

import (
	"regexp"
	"strings"

	"github.com/jmt-genius/synapcity-hub/internal/domain"
)

// Default placeholders used when the video backend response cannot be
// parsed or the backend call fails outright.
const (
	PlaceholderSummary = "Unable to generate summary for this video."

	placeholderTitlePrefix = "YouTube Video - "
)

var (
	titlePattern   = regexp.MustCompile(`(?i)TITLE:\s*(.+?)(?:\n|TAGS:|SUMMARY:)`)
	tagsPattern    = regexp.MustCompile(`(?i)TAGS:\s*(.+?)(?:\n|SUMMARY:)`)
	summaryPattern = regexp.MustCompile(`(?is)SUMMARY:\s*(.+)`)
)

// PlaceholderTitle returns the default title for a video whose summary
// could not be generated or parsed.
func PlaceholderTitle(videoID string) string {
	return placeholderTitlePrefix + videoID
}

// ParseVideoSummary extracts the TITLE:, TAGS: and SUMMARY: sections from a
// video backend response. Each section is extracted independently; missing
// sections fall back to placeholders, and when no SUMMARY: label is found
// the entire raw response becomes the summary with Parsed set to false.
func ParseVideoSummary(videoID, raw string) domain.VideoSummary {
	result := domain.VideoSummary{
		Title:   PlaceholderTitle(videoID),
		Tags:    []string{},
		Summary: strings.TrimSpace(raw),
	}

	if m := titlePattern.FindStringSubmatch(raw); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			result.Title = title
		}
	}

	if m := tagsPattern.FindStringSubmatch(raw); m != nil {
		for _, tag := range strings.Split(m[1], ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				result.Tags = append(result.Tags, tag)
			}
		}
	}

	if m := summaryPattern.FindStringSubmatch(raw); m != nil {
		if summary := strings.TrimSpace(m[1]); summary != "" {
			result.Summary = summary
			result.Parsed = true
		}
	}

	return result
}
