package ytdlp

import "strings"

// Substrings yt-dlp emits for videos no retry can recover.
const (
	markerPrivate     = "Private video"
	markerUnavailable = "Video unavailable"
)

// terminalReason inspects yt-dlp stderr for failures that are permanent for
// the item. The returned reason is the user-facing outcome text.
func terminalReason(stderr string) (string, bool) {
	switch {
	case strings.Contains(stderr, markerPrivate):
		return "Video is private", true
	case strings.Contains(stderr, markerUnavailable):
		return "Video unavailable", true
	default:
		return "", false
	}
}
