// Package main hosts the clipscribe CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the batch transcription run itself,
// dependency preflight, configuration scaffolding, and transcript archive
// inspection. It centralizes configuration resolution and structured logging
// setup so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
