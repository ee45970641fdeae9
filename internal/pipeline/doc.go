// Package pipeline runs the fixed three-stage sequence for one work item:
// metadata fetch, media fetch, transcription. Stages are supplied as
// capability interfaces so implementations (and test doubles) swap without
// touching the engine. The first stage failure short-circuits the rest, and
// the local media produced by the fetch stage is always released before the
// item finishes, whatever the transcription outcome.
package pipeline
