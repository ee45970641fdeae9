// Package whisper implements the transcription capability on top of the
// OpenAI Whisper CLI, parsing its JSON output into transcript records.
package whisper
