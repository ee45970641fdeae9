package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"clipscribe/internal/logging"
	"clipscribe/internal/services"
)

// FetchMedia downloads the best audio for a URL, transcoded to mp3, and
// returns the local file path. Attempts run under the client's retry policy;
// private/unavailable videos fail terminally on the first attempt.
func (c *Client) FetchMedia(ctx context.Context, url string) (string, error) {
	id := mediaID(url)
	outputPath := filepath.Join(c.workDir, id+".mp3")
	template := filepath.Join(c.workDir, id+".%(ext)s")

	args := append(c.commonArgs(),
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", c.audioQuality+"K",
		"-o", template,
		url,
	)

	err := c.policy.Do(ctx, func(ctx context.Context) error {
		if _, stderr, err := c.run(ctx, args); err != nil {
			if _, terminal := terminalReason(stderr); terminal {
				return services.Terminal("Video is private or unavailable")
			}
			return services.Transient(fmt.Sprintf("Download failed: %s", commandDetail(stderr, err)), err)
		}
		if _, err := os.Stat(outputPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return services.Terminal("Audio file not created")
			}
			return services.Transient(fmt.Sprintf("Download failed: %v", err), err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	c.logger.Debug("audio downloaded",
		logging.String(logging.FieldItemURL, url),
		logging.String("path", outputPath),
	)
	return outputPath, nil
}

// Release removes a downloaded media file. The file is item-scoped, so
// failure to remove it only leaks scratch space; it is logged, not returned.
func (c *Client) Release(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.logger.Warn("failed to remove downloaded audio",
			logging.String(logging.FieldEventType, "media_cleanup_failed"),
			logging.String("path", path),
			logging.Error(err),
		)
	}
}
