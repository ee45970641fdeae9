package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"clipscribe/internal/logging"
)

// document is the on-disk checkpoint layout. Field names are shared with the
// original progress file format and must not change.
type document struct {
	Timestamp     string            `json:"timestamp"`
	ProcessedURLs []string          `json:"processed_urls"`
	Results       []Outcome         `json:"results"`
	FailedURLs    map[string]string `json:"failed_urls"`
}

// Store persists Progress snapshots to a single JSON file, atomically with
// respect to process crash: the file on disk is always either the complete
// prior state or the complete new state.
type Store struct {
	path   string
	logger *slog.Logger

	// rename is swappable so tests can simulate a failed replace.
	rename func(oldpath, newpath string) error
	now    func() time.Time
}

// NewStore creates a checkpoint store writing to path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "checkpoint"),
		rename: os.Rename,
		now:    time.Now,
	}
}

// Path returns the canonical checkpoint file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads durable progress if present. A missing, unreadable, or
// malformed checkpoint yields (nil, false): resume recovers by starting
// fresh rather than aborting the run.
func (s *Store) Load() (*Progress, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("checkpoint unreadable; starting fresh",
				logging.String(logging.FieldEventType, "checkpoint_load_failed"),
				logging.String("path", s.path),
				logging.Error(err),
			)
		}
		return nil, false
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("checkpoint malformed; starting fresh",
			logging.String(logging.FieldEventType, "checkpoint_corrupt"),
			logging.String("path", s.path),
			logging.Error(err),
		)
		return nil, false
	}

	progress := &Progress{
		processed: make(map[string]struct{}, len(doc.ProcessedURLs)),
		results:   doc.Results,
		failed:    doc.FailedURLs,
	}
	if progress.failed == nil {
		progress.failed = make(map[string]string)
	}
	for _, url := range doc.ProcessedURLs {
		progress.processed[url] = struct{}{}
	}

	if !progress.consistent() {
		s.logger.Warn("checkpoint inconsistent; starting fresh",
			logging.String(logging.FieldEventType, "checkpoint_corrupt"),
			logging.String("path", s.path),
		)
		return nil, false
	}

	s.logger.Debug("checkpoint loaded",
		logging.String("path", s.path),
		logging.Int("processed", len(progress.processed)),
	)
	return progress, true
}

// Persist writes the entire progress state durably. The write goes to a
// temporary file in the same directory followed by an atomic rename over the
// canonical path; a failure leaves the previous checkpoint untouched.
func (s *Store) Persist(progress *Progress) error {
	if progress == nil {
		return errors.New("progress cannot be nil")
	}

	urls := make([]string, 0, len(progress.processed))
	for url := range progress.processed {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	doc := document{
		Timestamp:     s.now().UTC().Format(time.RFC3339),
		ProcessedURLs: urls,
		Results:       progress.results,
		FailedURLs:    progress.failed,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create checkpoint directory: %w", err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp checkpoint: %w", err)
	}
	if err := s.rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace checkpoint: %w", err)
	}
	return nil
}

// Clear removes the durable checkpoint after an uninterrupted complete run.
// Removal failure only means a future run may see a stale checkpoint, so it
// is logged and swallowed.
func (s *Store) Clear() {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("failed to remove checkpoint",
			logging.String(logging.FieldEventType, "checkpoint_clear_failed"),
			logging.String("path", s.path),
			logging.Error(err),
		)
	}
}
