package ytdlp

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"clipscribe/internal/config"
	"clipscribe/internal/logging"
	"clipscribe/internal/retry"
	"clipscribe/internal/services"
)

// Client invokes yt-dlp for metadata extraction and audio downloads.
type Client struct {
	binary             string
	workDir            string
	cookiesFromBrowser string
	audioQuality       string
	policy             retry.Policy
	logger             *slog.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		binary:             cfg.Download.Binary,
		workDir:            cfg.Paths.WorkDir,
		cookiesFromBrowser: cfg.Download.CookiesFromBrowser,
		audioQuality:       cfg.Download.AudioQuality,
		policy: retry.Policy{
			MaxAttempts: cfg.Download.MaxAttempts,
			BaseDelay:   time.Duration(cfg.Download.BaseDelaySeconds) * time.Second,
			Classify:    classify,
		},
		logger: logging.NewComponentLogger(logger, "ytdlp"),
	}
}

func classify(err error) retry.Classification {
	if services.IsTerminal(err) {
		return retry.Terminal
	}
	return retry.Retryable
}

// run executes yt-dlp and returns trimmed stdout plus stderr for
// classification.
func (c *Client) run(ctx context.Context, args []string) ([]byte, string, error) {
	cmd := exec.CommandContext(ctx, c.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), strings.TrimSpace(stderr.String()), err
}

func (c *Client) commonArgs() []string {
	args := []string{"--no-warnings"}
	if c.cookiesFromBrowser != "" {
		args = append(args, "--cookies-from-browser", c.cookiesFromBrowser)
	}
	return args
}

var (
	tiktokIDPattern    = regexp.MustCompile(`/video/(\d+)`)
	instagramIDPattern = regexp.MustCompile(`/(?:reel|p)/([A-Za-z0-9_-]+)`)
)

// mediaID derives a stable local filename stem for a URL: the platform video
// ID when one is recognizable, otherwise a short content hash (covers
// shortened and unknown URL shapes).
func mediaID(url string) string {
	if m := tiktokIDPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := instagramIDPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:12]
}
