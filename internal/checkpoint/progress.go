package checkpoint

import (
	"errors"
	"fmt"
	"strings"

	"clipscribe/internal/media"
)

// Status labels an item outcome.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Outcome is the terminal result recorded for one work item. It is created
// once and never mutated afterward.
type Outcome struct {
	URL        string            `json:"url"`
	Status     Status            `json:"status"`
	Metadata   *media.Metadata   `json:"metadata,omitempty"`
	Transcript *media.Transcript `json:"transcript,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Success builds a successful outcome carrying the accumulated stage payloads.
func Success(url string, metadata *media.Metadata, transcript *media.Transcript) Outcome {
	return Outcome{URL: url, Status: StatusSuccess, Metadata: metadata, Transcript: transcript}
}

// Failure builds a failed outcome with its reason string.
func Failure(url, reason string) Outcome {
	return Outcome{URL: url, Status: StatusFailed, Error: reason}
}

// Stats are derived counts, computed on demand and never stored.
type Stats struct {
	Processed  int
	Successful int
	Failed     int
}

// Progress is the durable aggregate for one batch run: the set of processed
// URLs, the append-only outcome sequence in completion order, and the failure
// reasons keyed by URL. It has a single writer (the batch runner) and is
// persisted through Store after every recorded item.
type Progress struct {
	processed map[string]struct{}
	results   []Outcome
	failed    map[string]string
}

// NewProgress returns an empty progress aggregate.
func NewProgress() *Progress {
	return &Progress{
		processed: make(map[string]struct{}),
		failed:    make(map[string]string),
	}
}

// Record appends the outcome for one work item. The URL is trimmed before it
// is used as a key so it always matches the worklist's trimmed form. Each URL
// is recorded at most once; a second outcome for the same URL is a
// programming error.
func (p *Progress) Record(outcome Outcome) error {
	url := strings.TrimSpace(outcome.URL)
	if url == "" {
		return errors.New("outcome URL cannot be empty")
	}
	if _, exists := p.processed[url]; exists {
		return fmt.Errorf("outcome already recorded for %q", url)
	}
	switch outcome.Status {
	case StatusSuccess, StatusFailed:
	default:
		return fmt.Errorf("unknown outcome status %q", outcome.Status)
	}

	outcome.URL = url
	p.processed[url] = struct{}{}
	p.results = append(p.results, outcome)
	if outcome.Status == StatusFailed {
		reason := outcome.Error
		if reason == "" {
			reason = "unknown error"
		}
		p.failed[url] = reason
	}
	return nil
}

// IsProcessed reports whether a terminal outcome exists for the URL.
func (p *Progress) IsProcessed(url string) bool {
	_, ok := p.processed[url]
	return ok
}

// Pending filters the input sequence down to URLs with no recorded outcome,
// preserving input order. Duplicate URLs collapse to a single entry.
func (p *Progress) Pending(urls []string) []string {
	pending := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		if !p.IsProcessed(url) {
			pending = append(pending, url)
		}
	}
	return pending
}

// Results returns a copy of the outcome sequence in completion order.
func (p *Progress) Results() []Outcome {
	out := make([]Outcome, len(p.results))
	copy(out, p.results)
	return out
}

// FailureReason returns the recorded reason for a failed URL.
func (p *Progress) FailureReason(url string) (string, bool) {
	reason, ok := p.failed[url]
	return reason, ok
}

// Stats derives processed/successful/failed counts from the current state.
func (p *Progress) Stats() Stats {
	successful := 0
	for _, r := range p.results {
		if r.Status == StatusSuccess {
			successful++
		}
	}
	return Stats{
		Processed:  len(p.processed),
		Successful: successful,
		Failed:     len(p.failed),
	}
}

// consistent verifies the structural invariants a well-formed checkpoint
// satisfies: one outcome per processed URL and every recorded URL present in
// the processed set.
func (p *Progress) consistent() bool {
	if len(p.results) != len(p.processed) {
		return false
	}
	for _, r := range p.results {
		if _, ok := p.processed[r.URL]; !ok {
			return false
		}
	}
	for url := range p.failed {
		if _, ok := p.processed[url]; !ok {
			return false
		}
	}
	return true
}
