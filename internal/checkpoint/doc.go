// Package checkpoint owns durable batch progress: the in-memory Progress
// aggregate and the Store that persists it atomically to disk as JSON.
//
// Progress is mutated exactly once per completed item, and the Store writes
// via a temp-file-then-rename scheme so a crash can never leave a torn
// checkpoint behind. A checkpoint that cannot be read or parsed is treated
// as absent, never as a fatal error.
package checkpoint
