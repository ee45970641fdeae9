// Package language maps the ISO codes whisper reports to human-readable
// names for summaries and listings.
package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DisplayName returns the English name for a language code ("en" →
// "English"). Unparseable or unknown codes pass through unchanged so raw
// whisper output is never hidden.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" || trimmed == "unknown" {
		return "unknown"
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return trimmed
	}
	return name
}
