// Package batch is the resumable execution engine. The Runner drives the
// per-item pipeline across the full work list, skips items already recorded
// in the checkpoint when resuming, persists progress durably after every
// item, and honors a cooperative interrupt polled between items.
//
// Per-item failures never abort the batch; a checkpoint persist failure is
// the one error class that does, since continuing without durable progress
// would break the resume guarantee.
package batch
