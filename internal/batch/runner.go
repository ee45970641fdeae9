package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"clipscribe/internal/checkpoint"
	"clipscribe/internal/logging"
	"clipscribe/internal/services"
)

// Processor produces the terminal outcome for a single work item.
// *pipeline.Pipeline satisfies it; tests substitute doubles.
type Processor interface {
	Process(ctx context.Context, url string) checkpoint.Outcome
}

// Observer is notified after each item's outcome has been made durable.
// Callers hook progress display and the transcript archive here.
type Observer func(outcome checkpoint.Outcome, stats checkpoint.Stats)

// Options configures a Runner.
type Options struct {
	Processor Processor
	Store     *checkpoint.Store
	Logger    *slog.Logger
	Observer  Observer
}

// Runner orchestrates one batch run. It is the single writer of the progress
// state; items are processed strictly one at a time in input order.
type Runner struct {
	processor Processor
	store     *checkpoint.Store
	logger    *slog.Logger
	observer  Observer

	interrupted atomic.Bool
}

// New constructs a Runner.
func New(opts Options) (*Runner, error) {
	if opts.Processor == nil {
		return nil, errors.New("batch: processor is required")
	}
	if opts.Store == nil {
		return nil, errors.New("batch: checkpoint store is required")
	}
	return &Runner{
		processor: opts.Processor,
		store:     opts.Store,
		logger:    logging.NewComponentLogger(opts.Logger, "batch"),
		observer:  opts.Observer,
	}, nil
}

// Interrupt requests a cooperative stop. The flag is polled between items,
// never mid-item, so the in-flight item always reaches a terminal outcome
// and is persisted before the loop exits.
func (r *Runner) Interrupt() {
	r.interrupted.Store(true)
}

// Interrupted reports whether the run stopped before draining the pending
// set. Callers use it to decide whether the checkpoint may be cleared.
func (r *Runner) Interrupted() bool {
	return r.interrupted.Load()
}

// Run processes the work list and returns all outcomes in completion order,
// including outcomes restored from the checkpoint when resuming. The only
// error it returns is a persistence failure, which aborts the run.
func (r *Runner) Run(ctx context.Context, urls []string, resume bool) ([]checkpoint.Outcome, error) {
	progress := checkpoint.NewProgress()
	if resume {
		if loaded, found := r.store.Load(); found {
			progress = loaded
			stats := progress.Stats()
			r.logger.Info("resuming from checkpoint",
				logging.String(logging.FieldEventType, "batch_resume"),
				logging.Int("already_processed", stats.Processed),
			)
		}
	}

	pending := progress.Pending(urls)
	if len(pending) == 0 {
		r.logger.Info("all items already processed",
			logging.String(logging.FieldEventType, "batch_noop"),
		)
		return progress.Results(), nil
	}

	r.logger.Info("processing batch",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.Int("pending", len(pending)),
		logging.Int("total", len(urls)),
	)

	for _, url := range pending {
		if ctx.Err() != nil {
			r.interrupted.Store(true)
		}
		if r.interrupted.Load() {
			r.logger.Info("interrupted; progress saved",
				logging.String(logging.FieldEventType, "batch_interrupted"),
				logging.Int("processed", progress.Stats().Processed),
			)
			break
		}

		itemCtx := logging.WithCorrelationID(logging.WithItemURL(ctx, url), uuid.NewString())
		outcome := r.processor.Process(itemCtx, url)

		if err := progress.Record(outcome); err != nil {
			return progress.Results(), fmt.Errorf("record outcome: %w", err)
		}
		// Durability boundary: the outcome must hit disk before the next
		// item starts, so a crash costs at most the in-flight item.
		if err := r.store.Persist(progress); err != nil {
			return progress.Results(), services.Wrap(services.ErrPersistence, "batch", "persist checkpoint", "", err)
		}

		if r.observer != nil {
			r.observer(outcome, progress.Stats())
		}
	}

	return progress.Results(), nil
}
