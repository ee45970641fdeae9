// Package media defines the records produced by the per-item pipeline
// stages: video metadata and transcripts. The JSON field names are part of
// the checkpoint and report formats and must stay stable.
package media
