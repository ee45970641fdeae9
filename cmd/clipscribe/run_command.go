package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"clipscribe/internal/archive"
	"clipscribe/internal/batch"
	"clipscribe/internal/checkpoint"
	"clipscribe/internal/config"
	"clipscribe/internal/deps"
	"clipscribe/internal/language"
	"clipscribe/internal/logging"
	"clipscribe/internal/pipeline"
	"clipscribe/internal/report"
	"clipscribe/internal/runlock"
	"clipscribe/internal/services/whisper"
	"clipscribe/internal/services/ytdlp"
	"clipscribe/internal/worklist"
)

const defaultProgressFile = ".clipscribe_progress.json"

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath    string
		outputPath   string
		modelFlag    string
		progressPath string
		resume       bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Transcribe a batch of video URLs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if model := strings.TrimSpace(modelFlag); model != "" {
				if !slices.Contains(config.WhisperModels, model) {
					return fmt.Errorf("unknown whisper model %q (valid: %s)", model, strings.Join(config.WhisperModels, ", "))
				}
				cfg.Whisper.Model = model
			}
			return runBatch(cmd, cfg, inputPath, outputPath, progressPath, resume)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "File containing video URLs, one per line")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path for the JSON report")
	cmd.Flags().StringVar(&modelFlag, "model", "", "Whisper model override")
	cmd.Flags().StringVar(&progressPath, "progress-file", defaultProgressFile, "Checkpoint file for resumable runs")
	cmd.Flags().BoolVar(&resume, "resume", false, "Resume from a checkpoint left by an interrupted run (default: start fresh)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runBatch(cmd *cobra.Command, cfg *config.Config, inputPath, outputPath, progressPath string, resume bool) error {
	out := cmd.OutOrStdout()

	urls, err := worklist.Load(inputPath)
	if err != nil {
		return fmt.Errorf("load url list: %w", err)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", inputPath)
	}

	statuses := deps.CheckBinaries(deps.Default(cfg))
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s (run `clipscribe deps` for details)", strings.Join(missing, ", "))
	}

	logger, err := logging.NewFromConfig(logging.FromConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		LogDir: cfg.Paths.LogDir,
	})
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	lock, err := runlock.Acquire(runlock.PathFor(progressPath))
	if err != nil {
		return err
	}
	defer lock.Release()

	var transcripts *archive.Store
	if cfg.Archive.Enabled {
		transcripts, err = archive.Open(cfg.Archive.Path)
		if err != nil {
			return fmt.Errorf("open transcript archive: %w", err)
		}
		defer transcripts.Close()
	}

	store := checkpoint.NewStore(progressPath, logger)
	client := ytdlp.NewClient(cfg, logger)
	transcriber := whisper.NewClient(cfg, logger)
	proc := pipeline.New(client, client, transcriber, logger)

	total := countUnique(urls)
	runner, err := batch.New(batch.Options{
		Processor: proc,
		Store:     store,
		Logger:    logger,
		Observer: func(outcome checkpoint.Outcome, stats checkpoint.Stats) {
			printOutcome(cmd, outcome, stats, total)
			if transcripts != nil {
				if saveErr := transcripts.Save(cmd.Context(), outcome); saveErr != nil {
					logger.Warn("archive save failed", logging.String(logging.FieldItemURL, outcome.URL), logging.Error(saveErr))
				}
			}
		},
	})
	if err != nil {
		return err
	}

	runCtx, stop := signalAwareContext(cmd.Context(), runner)
	defer stop()

	outcomes, runErr := runner.Run(runCtx, urls, resume)

	// The report is written even on interrupt or persistence failure so the
	// work completed so far is never lost.
	doc := report.Build(outcomes, time.Now())
	if writeErr := report.Write(outputPath, doc); writeErr != nil {
		if runErr != nil {
			return fmt.Errorf("%w (additionally: %v)", runErr, writeErr)
		}
		return writeErr
	}

	printSummary(cmd, doc, outputPath)

	if runErr != nil {
		return runErr
	}
	if runner.Interrupted() {
		fmt.Fprintf(out, "Interrupted; progress saved to %s. Re-run the same command to resume.\n", progressPath)
		return nil
	}
	store.Clear()
	return nil
}

// signalAwareContext requests a cooperative stop on the first SIGINT/SIGTERM
// so the in-flight item finishes and is checkpointed; a second signal cancels
// the context outright.
func signalAwareContext(parent context.Context, runner *batch.Runner) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			runner.Interrupt()
		case <-ctx.Done():
			return
		}
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

func countUnique(urls []string) int {
	seen := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		seen[url] = struct{}{}
	}
	return len(seen)
}

func printOutcome(cmd *cobra.Command, outcome checkpoint.Outcome, stats checkpoint.Stats, total int) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	prefix := fmt.Sprintf("[%d/%d]", stats.Processed, total)
	if outcome.Status == checkpoint.StatusSuccess {
		detail := outcome.URL
		if outcome.Transcript != nil && outcome.Transcript.Language != "" {
			detail = fmt.Sprintf("%s (%s)", outcome.URL, language.DisplayName(outcome.Transcript.Language))
		}
		fmt.Fprintln(out, renderStatusLine(prefix, statusOK, detail, colorize))
		return
	}
	fmt.Fprintln(out, renderStatusLine(prefix, statusError, fmt.Sprintf("%s: %s", outcome.URL, outcome.Error), colorize))
}

func printSummary(cmd *cobra.Command, doc report.Document, outputPath string) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintln(out, renderHeader("Batch Summary", colorize))
	fmt.Fprintln(out, renderStatusLine("Total", statusInfo, fmt.Sprintf("%d", doc.TotalVideos), colorize))
	fmt.Fprintln(out, renderStatusLine("Successful", statusOK, fmt.Sprintf("%d", doc.Successful), colorize))
	failKind := statusOK
	if doc.Failed > 0 {
		failKind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("Failed", failKind, fmt.Sprintf("%d", doc.Failed), colorize))
	fmt.Fprintln(out, renderStatusLine("Report", statusInfo, outputPath, colorize))

	if languages := report.Languages(doc.Results); len(languages) > 0 {
		rows := make([][]string, 0, len(languages))
		for _, lc := range languages {
			rows = append(rows, []string{language.DisplayName(lc.Language), fmt.Sprintf("%d", lc.Count)})
		}
		fmt.Fprintln(out, renderTable([]string{"Language", "Videos"}, rows, 2))
	}
}
