// Package ytdlp implements the metadata and media fetch capabilities on top
// of the yt-dlp binary.
//
// Metadata extraction is fail-fast; audio downloads run under the configured
// retry policy with "Private video" / "Video unavailable" classified as
// terminal so they are never retried.
package ytdlp
