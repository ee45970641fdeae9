package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"clipscribe/internal/config"
	"clipscribe/internal/logging"
	"clipscribe/internal/media"
	"clipscribe/internal/services"
)

// Client transcribes local audio files with the whisper CLI.
type Client struct {
	binary string
	model  string
	logger *slog.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		binary: cfg.Whisper.Binary,
		model:  cfg.Whisper.Model,
		logger: logging.NewComponentLogger(logger, "whisper"),
	}
}

// Transcribe runs whisper over the audio file and returns the parsed
// transcript. Whisper's JSON output goes to a per-call temp directory that
// is removed before returning.
func (c *Client) Transcribe(ctx context.Context, path string) (*media.Transcript, error) {
	outDir, err := os.MkdirTemp("", "clipscribe-whisper-")
	if err != nil {
		return nil, fmt.Errorf("%w: Transcription failed: %v", services.ErrExternalTool, err)
	}
	defer os.RemoveAll(outDir)

	args := []string{
		path,
		"--model", c.model,
		"--output_format", "json",
		"--output_dir", outDir,
		"--word_timestamps", "True",
		"--verbose", "False",
	}

	cmd := exec.CommandContext(ctx, c.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%w: Transcription failed: %s", services.ErrExternalTool, detail)
	}

	resultPath := filepath.Join(outDir, stem(path)+".json")
	data, err := os.ReadFile(resultPath)
	if err != nil {
		return nil, fmt.Errorf("%w: Transcription failed: missing whisper output: %v", services.ErrExternalTool, err)
	}

	transcript, err := parseResult(data)
	if err != nil {
		return nil, fmt.Errorf("%w: Transcription failed: %v", services.ErrExternalTool, err)
	}

	c.logger.Debug("transcription complete",
		logging.String("path", path),
		logging.String("language", transcript.Language),
		logging.Int("segments", len(transcript.Segments)),
	)
	return transcript, nil
}

type resultSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type result struct {
	Text     string          `json:"text"`
	Segments []resultSegment `json:"segments"`
	Language string          `json:"language"`
}

// parseResult converts whisper's JSON document into a transcript record:
// text trimmed, segment times rounded to two decimals, language defaulting
// to "unknown".
func parseResult(data []byte) (*media.Transcript, error) {
	var doc result
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	segments := make([]media.Segment, 0, len(doc.Segments))
	for _, seg := range doc.Segments {
		segments = append(segments, media.Segment{
			Start: media.RoundSeconds(seg.Start),
			End:   media.RoundSeconds(seg.End),
			Text:  strings.TrimSpace(seg.Text),
		})
	}

	language := strings.TrimSpace(doc.Language)
	if language == "" {
		language = "unknown"
	}

	return &media.Transcript{
		Text:     strings.TrimSpace(doc.Text),
		Segments: segments,
		Language: language,
	}, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
