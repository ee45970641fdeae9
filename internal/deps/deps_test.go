package deps_test

import (
	"testing"

	"clipscribe/internal/deps"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "shell", Command: "sh", Description: "posix shell"},
		{Name: "ghost", Command: "clipscribe-test-no-such-binary", Description: "never installed"},
		{Name: "blank", Command: "  ", Description: "unset"},
	})
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("expected sh to be available: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Fatalf("expected ghost to be missing with detail: %+v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Fatalf("expected blank command to be reported: %+v", statuses[2])
	}
}

func TestMissingRequired(t *testing.T) {
	statuses := []deps.Status{
		{Name: "yt-dlp", Available: true},
		{Name: "whisper", Available: false},
		{Name: "extra", Available: false, Optional: true},
	}
	missing := deps.MissingRequired(statuses)
	if len(missing) != 1 || missing[0] != "whisper" {
		t.Fatalf("missing = %v, want [whisper]", missing)
	}
}
