// Package services holds the error classification contract shared by the
// external capability clients (metadata, download, transcription) and the
// batch engine, plus context annotations used for log enrichment.
//
// Errors are tagged with sentinel markers so downstream code can decide
// whether a failure is terminal for the item, retryable, or fatal for the
// whole run without parsing message text.
package services
