package batch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clipscribe/internal/batch"
	"clipscribe/internal/checkpoint"
	"clipscribe/internal/logging"
	"clipscribe/internal/media"
	"clipscribe/internal/services"
)

// scriptedProcessor fails the URLs listed in failures and succeeds otherwise,
// counting every processed URL.
type scriptedProcessor struct {
	failures map[string]string
	calls    []string
}

func (s *scriptedProcessor) Process(_ context.Context, url string) checkpoint.Outcome {
	s.calls = append(s.calls, url)
	if reason, ok := s.failures[url]; ok {
		return checkpoint.Failure(url, reason)
	}
	return checkpoint.Success(url, &media.Metadata{Title: url}, &media.Transcript{Text: "t", Language: "en"})
}

func newRunner(t *testing.T, processor batch.Processor, store *checkpoint.Store, observer batch.Observer) *batch.Runner {
	t.Helper()
	runner, err := batch.New(batch.Options{
		Processor: processor,
		Store:     store,
		Logger:    logging.NewNop(),
		Observer:  observer,
	})
	if err != nil {
		t.Fatalf("batch.New: %v", err)
	}
	return runner
}

func tempStore(t *testing.T) *checkpoint.Store {
	t.Helper()
	return checkpoint.NewStore(filepath.Join(t.TempDir(), "progress.json"), logging.NewNop())
}

func TestRunRecordsOneOutcomePerItem(t *testing.T) {
	processor := &scriptedProcessor{failures: map[string]string{"B": "Video is private"}}
	store := tempStore(t)
	runner := newRunner(t, processor, store, nil)

	outcomes, err := runner.Run(context.Background(), []string{"A", "B", "C"}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3", len(outcomes))
	}
	if outcomes[0].Status != checkpoint.StatusSuccess || outcomes[0].URL != "A" {
		t.Fatalf("outcomes[0] = %+v", outcomes[0])
	}
	if outcomes[1].Status != checkpoint.StatusFailed || outcomes[1].Error != "Video is private" {
		t.Fatalf("outcomes[1] = %+v", outcomes[1])
	}
	if outcomes[2].Status != checkpoint.StatusSuccess || outcomes[2].URL != "C" {
		t.Fatalf("outcomes[2] = %+v", outcomes[2])
	}

	loaded, found := store.Load()
	if !found {
		t.Fatal("expected checkpoint on disk")
	}
	stats := loaded.Stats()
	if stats.Processed != 3 || stats.Successful != 2 || stats.Failed != 1 {
		t.Fatalf("stats = %+v, want processed=3 successful=2 failed=1", stats)
	}
	if runner.Interrupted() {
		t.Fatal("uninterrupted run must not report interruption")
	}
}

func TestRunResumeIsIdempotent(t *testing.T) {
	store := tempStore(t)
	first := &scriptedProcessor{}
	if _, err := newRunner(t, first, store, nil).Run(context.Background(), []string{"A", "B"}, false); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	second := &scriptedProcessor{}
	outcomes, err := newRunner(t, second, store, nil).Run(context.Background(), []string{"A", "B"}, true)
	if err != nil {
		t.Fatalf("resumed Run: %v", err)
	}
	if len(second.calls) != 0 {
		t.Fatalf("resume reprocessed items: %v", second.calls)
	}
	if len(outcomes) != 2 || outcomes[0].URL != "A" || outcomes[1].URL != "B" {
		t.Fatalf("outcome sequence changed on resume: %+v", outcomes)
	}
}

func TestRunResumeProcessesOnlyRemainder(t *testing.T) {
	store := tempStore(t)
	urls := []string{"A", "B", "C", "D"}

	// Stop after the second durable outcome, as if the process died before
	// starting item three.
	first := &scriptedProcessor{}
	var firstRunner *batch.Runner
	firstRunner = newRunner(t, first, store, func(_ checkpoint.Outcome, stats checkpoint.Stats) {
		if stats.Processed == 2 {
			firstRunner.Interrupt()
		}
	})
	if _, err := firstRunner.Run(context.Background(), urls, false); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if !firstRunner.Interrupted() {
		t.Fatal("expected first run to report interruption")
	}
	if len(first.calls) != 2 {
		t.Fatalf("first run processed %v, want first two", first.calls)
	}

	second := &scriptedProcessor{}
	outcomes, err := newRunner(t, second, store, nil).Run(context.Background(), urls, true)
	if err != nil {
		t.Fatalf("resumed Run: %v", err)
	}
	if len(second.calls) != 2 || second.calls[0] != "C" || second.calls[1] != "D" {
		t.Fatalf("resume processed %v, want [C D]", second.calls)
	}
	if len(outcomes) != 4 {
		t.Fatalf("outcomes = %d, want 4", len(outcomes))
	}
}

func TestRunWithoutResumeIgnoresExistingCheckpoint(t *testing.T) {
	store := tempStore(t)
	if _, err := newRunner(t, &scriptedProcessor{}, store, nil).Run(context.Background(), []string{"A"}, false); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	second := &scriptedProcessor{}
	if _, err := newRunner(t, second, store, nil).Run(context.Background(), []string{"A"}, false); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(second.calls) != 1 {
		t.Fatalf("resume=false must reprocess, calls=%v", second.calls)
	}
}

func TestRunCollapsesDuplicateInput(t *testing.T) {
	processor := &scriptedProcessor{}
	outcomes, err := newRunner(t, processor, tempStore(t), nil).Run(context.Background(), []string{"A", "A", "A"}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(processor.calls) != 1 || len(outcomes) != 1 {
		t.Fatalf("duplicates must collapse: calls=%v outcomes=%d", processor.calls, len(outcomes))
	}
}

func TestRunPersistFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	// The checkpoint parent "directory" is a regular file, so every persist
	// attempt fails.
	store := checkpoint.NewStore(filepath.Join(blocker, "progress.json"), logging.NewNop())

	processor := &scriptedProcessor{}
	_, err := newRunner(t, processor, store, nil).Run(context.Background(), []string{"A", "B"}, false)
	if err == nil {
		t.Fatal("expected persistence failure to abort the run")
	}
	if !errors.Is(err, services.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if len(processor.calls) != 1 {
		t.Fatalf("run must stop at the first persist failure, calls=%v", processor.calls)
	}
}

func TestRunHonorsContextCancellationBetweenItems(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	processor := &scriptedProcessor{}
	store := tempStore(t)
	runner := newRunner(t, processor, store, func(checkpoint.Outcome, checkpoint.Stats) { cancel() })

	outcomes, err := runner.Run(ctx, []string{"A", "B", "C"}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("outcomes = %d, want 1 (stop after first item)", len(outcomes))
	}
	if !runner.Interrupted() {
		t.Fatal("cancellation must surface as interruption")
	}
}
