// Package report builds and writes the final run report. The report is a
// presentation artifact produced once at run end; its format is independent
// of the checkpoint file.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"clipscribe/internal/checkpoint"
)

// Document is the on-disk report layout.
type Document struct {
	GeneratedAt string               `json:"generated_at"`
	TotalVideos int                  `json:"total_videos"`
	Successful  int                  `json:"successful"`
	Failed      int                  `json:"failed"`
	Results     []checkpoint.Outcome `json:"results"`
}

// Build assembles a report document from the outcome sequence.
func Build(outcomes []checkpoint.Outcome, generatedAt time.Time) Document {
	successful := 0
	for _, outcome := range outcomes {
		if outcome.Status == checkpoint.StatusSuccess {
			successful++
		}
	}
	return Document{
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		TotalVideos: len(outcomes),
		Successful:  successful,
		Failed:      len(outcomes) - successful,
		Results:     outcomes,
	}
}

// Write serializes the document to path as indented JSON.
func Write(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// LanguageCount pairs a detected language code with the number of successful
// transcripts in that language.
type LanguageCount struct {
	Language string
	Count    int
}

// Languages tallies detected languages across successful outcomes, most
// frequent first (ties alphabetical).
func Languages(outcomes []checkpoint.Outcome) []LanguageCount {
	counts := make(map[string]int)
	for _, outcome := range outcomes {
		if outcome.Status != checkpoint.StatusSuccess || outcome.Transcript == nil {
			continue
		}
		counts[outcome.Transcript.Language]++
	}

	result := make([]LanguageCount, 0, len(counts))
	for language, count := range counts {
		result = append(result, LanguageCount{Language: language, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Language < result[j].Language
	})
	return result
}
