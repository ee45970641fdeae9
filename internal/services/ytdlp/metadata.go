package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"

	"clipscribe/internal/media"
	"clipscribe/internal/services"
)

// videoInfo mirrors the subset of the yt-dlp -J document clipscribe consumes.
type videoInfo struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Uploader     string   `json:"uploader"`
	Creator      string   `json:"creator"`
	UploaderID   string   `json:"uploader_id"`
	ChannelID    string   `json:"channel_id"`
	LikeCount    *int64   `json:"like_count"`
	ViewCount    *int64   `json:"view_count"`
	CommentCount *int64   `json:"comment_count"`
	Duration     *float64 `json:"duration"`
	UploadDate   string   `json:"upload_date"`
	Thumbnail    string   `json:"thumbnail"`
}

// FetchMetadata extracts descriptive metadata for a URL without downloading
// media. Failures are not retried; the pipeline records them as the item's
// outcome directly.
func (c *Client) FetchMetadata(ctx context.Context, url string) (*media.Metadata, error) {
	args := append(c.commonArgs(), "-J", "--skip-download", url)

	stdout, stderr, err := c.run(ctx, args)
	if err != nil {
		if reason, terminal := terminalReason(stderr); terminal {
			return nil, services.Terminal(reason)
		}
		return nil, fmt.Errorf("%w: Could not extract metadata: %s", services.ErrExternalTool, commandDetail(stderr, err))
	}
	if len(stdout) == 0 {
		return nil, fmt.Errorf("%w: Could not extract video info", services.ErrExternalTool)
	}

	var info videoInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		return nil, fmt.Errorf("%w: Could not extract metadata: %w", services.ErrExternalTool, err)
	}

	return info.record(), nil
}

func (info *videoInfo) record() *media.Metadata {
	author := info.Uploader
	if author == "" {
		author = info.Creator
	}
	authorID := info.UploaderID
	if authorID == "" {
		authorID = info.ChannelID
	}
	return &media.Metadata{
		Title:       info.Title,
		Description: info.Description,
		Author:      author,
		AuthorID:    authorID,
		Likes:       info.LikeCount,
		Views:       info.ViewCount,
		Comments:    info.CommentCount,
		Duration:    info.Duration,
		UploadDate:  formatUploadDate(info.UploadDate),
		Thumbnail:   info.Thumbnail,
	}
}

// formatUploadDate normalizes yt-dlp's YYYYMMDD to YYYY-MM-DD. Anything else
// passes through untouched.
func formatUploadDate(date string) string {
	if len(date) != 8 {
		return date
	}
	for _, r := range date {
		if r < '0' || r > '9' {
			return date
		}
	}
	return date[:4] + "-" + date[4:6] + "-" + date[6:]
}

func commandDetail(stderr string, err error) string {
	if stderr != "" {
		return stderr
	}
	if err != nil {
		return err.Error()
	}
	return "unknown error"
}
