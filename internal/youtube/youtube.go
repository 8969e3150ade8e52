// Package youtube classifies URLs as YouTube videos and extracts video IDs.
package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

// videoIDLength is the fixed length of a YouTube video ID.
const videoIDLength = 11

// videoIDPattern matches the common YouTube URL shapes: watch?v=, youtu.be
// short links, embed paths and bare /v/ paths. The second capture group is
// the candidate video ID.
var videoIDPattern = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// Classification is the result of classifying a URL.
type Classification struct {
	IsVideo bool
	VideoID string
}

// Classify inspects a URL and reports whether it points at a YouTube video,
// along with the extracted video ID when one is present. Malformed URLs
// classify as non-video rather than erroring.
func Classify(rawURL string) Classification {
	if !IsVideoURL(rawURL) {
		return Classification{}
	}
	id, ok := ExtractVideoID(rawURL)
	if !ok {
		return Classification{IsVideo: true}
	}
	return Classification{IsVideo: true, VideoID: id}
}

// IsVideoURL reports whether the URL's host belongs to YouTube.
func IsVideoURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be")
}

// ExtractVideoID extracts the 11-character video ID from a YouTube URL.
// It returns false when no ID of exactly the expected length is found.
func ExtractVideoID(rawURL string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	id := m[2]
	if len(id) != videoIDLength {
		return "", false
	}
	return id, true
}

// CanonicalURL returns the normalized watch URL for a video ID.
func CanonicalURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ThumbnailURL returns the maximum-resolution thumbnail URL for a video ID.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg"
}
