package pipeline

import (
	"context"
	"log/slog"

	"clipscribe/internal/checkpoint"
	"clipscribe/internal/logging"
	"clipscribe/internal/media"
	"clipscribe/internal/services"
)

// Stage names used in logs and error context.
const (
	StageMetadata   = "metadata"
	StageFetch      = "fetch"
	StageTranscribe = "transcribe"
)

// MetadataFetcher extracts descriptive metadata for a video URL.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, url string) (*media.Metadata, error)
}

// MediaFetcher downloads the media for a URL to a transient local file and
// releases it once the item is done with it. Release is best-effort.
type MediaFetcher interface {
	FetchMedia(ctx context.Context, url string) (string, error)
	Release(path string)
}

// Transcriber derives a transcript from a local media file.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (*media.Transcript, error)
}

// Pipeline drives one work item through the three stages in order.
type Pipeline struct {
	metadata    MetadataFetcher
	fetcher     MediaFetcher
	transcriber Transcriber
	logger      *slog.Logger
}

// New assembles a pipeline from its stage capabilities.
func New(metadata MetadataFetcher, fetcher MediaFetcher, transcriber Transcriber, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		metadata:    metadata,
		fetcher:     fetcher,
		transcriber: transcriber,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Process runs all stages for one URL and returns its terminal outcome. The
// outcome is always produced; stage errors become a failed outcome carrying
// the failure reason, never a returned error.
func (p *Pipeline) Process(ctx context.Context, url string) checkpoint.Outcome {
	itemCtx := logging.WithItemURL(ctx, url)

	metadata, err := p.metadata.FetchMetadata(logging.WithStage(itemCtx, StageMetadata), url)
	if err != nil {
		return p.fail(itemCtx, url, StageMetadata, err)
	}

	mediaPath, err := p.fetcher.FetchMedia(logging.WithStage(itemCtx, StageFetch), url)
	if err != nil {
		return p.fail(itemCtx, url, StageFetch, err)
	}
	// The downloaded media is item-scoped; release it on every exit path so
	// a long batch never accumulates local files.
	defer p.fetcher.Release(mediaPath)

	transcript, err := p.transcriber.Transcribe(logging.WithStage(itemCtx, StageTranscribe), mediaPath)
	if err != nil {
		return p.fail(itemCtx, url, StageTranscribe, err)
	}

	p.logger.Debug("item transcribed",
		logging.String(logging.FieldItemURL, url),
		logging.String("language", transcript.Language),
		logging.Int("segments", len(transcript.Segments)),
	)
	return checkpoint.Success(url, metadata, transcript)
}

func (p *Pipeline) fail(ctx context.Context, url, stage string, err error) checkpoint.Outcome {
	reason := services.Reason(err)
	logging.WithContext(ctx, p.logger).Warn("stage failed",
		logging.String(logging.FieldEventType, "stage_failure"),
		logging.String(logging.FieldStage, stage),
		logging.String("reason", reason),
		logging.Error(err),
	)
	return checkpoint.Failure(url, reason)
}
