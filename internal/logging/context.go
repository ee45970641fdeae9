package logging

import (
	"context"
	"log/slog"

	"clipscribe/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldItemURL is the standardized structured logging key for work item URLs.
	FieldItemURL = "item_url"
	// FieldStage is the standardized structured logging key for pipeline stage names.
	FieldStage = "stage"
	// FieldCorrelationID is the standardized structured logging key for per-item correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldEventType is the standardized structured logging key for machine-readable event labels.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized structured logging key for operator guidance on failures.
	FieldErrorHint = "error_hint"
)

// WithStage annotates the context with the pipeline stage name for log enrichment.
func WithStage(ctx context.Context, stage string) context.Context {
	return services.WithStage(ctx, stage)
}

// WithItemURL annotates the context with the work item URL for log enrichment.
func WithItemURL(ctx context.Context, url string) context.Context {
	return services.WithItemURL(ctx, url)
}

// WithCorrelationID annotates the context with a correlation identifier.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return services.WithRequestID(ctx, id)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []Attr {
	if ctx == nil {
		return nil
	}
	attrs := make([]Attr, 0, 3)
	if url, ok := services.ItemURLFromContext(ctx); ok {
		attrs = append(attrs, String(FieldItemURL, url))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		attrs = append(attrs, String(FieldStage, stage))
	}
	if id, ok := services.RequestIDFromContext(ctx); ok {
		attrs = append(attrs, String(FieldCorrelationID, id))
	}
	return attrs
}

// WithContext returns a logger pre-populated with any standardized attributes
// carried by the context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
