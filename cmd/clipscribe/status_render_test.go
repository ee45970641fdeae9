package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderStatusLinePlainAndColored(t *testing.T) {
	plain := renderStatusLine("Total", statusInfo, "3", false)
	if !strings.Contains(plain, "Total:") || !strings.Contains(plain, "[INFO] 3") {
		t.Fatalf("unexpected plain line: %q", plain)
	}
	if strings.Contains(plain, ansiReset) {
		t.Fatalf("plain line must carry no ANSI codes: %q", plain)
	}

	colored := renderStatusLine("Failed", statusWarn, "1", true)
	if !strings.HasPrefix(colored, statusStyles[statusWarn].color) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("colored line missing ANSI wrapping: %q", colored)
	}
	if !strings.Contains(colored, "[WARN] 1") {
		t.Fatalf("unexpected colored line: %q", colored)
	}
}

func TestRenderStatusLineWithoutMessage(t *testing.T) {
	line := renderStatusLine("whisper", statusOK, "", false)
	if !strings.Contains(line, "[OK]") || strings.Contains(line, "[OK] ") {
		t.Fatalf("unexpected line without message: %q", line)
	}
}

func TestRenderHeader(t *testing.T) {
	if got := renderHeader("Batch Summary", false); got != "== Batch Summary ==" {
		t.Fatalf("renderHeader = %q", got)
	}
	colored := renderHeader("Batch Summary", true)
	if !strings.HasSuffix(colored, ansiReset) || !strings.Contains(colored, "== Batch Summary ==") {
		t.Fatalf("colored header = %q", colored)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Language", "Videos"},
		[][]string{{"English", "2"}, {"Spanish", "10"}},
		2,
	)
	for _, want := range []string{"Language", "Videos", "English", "Spanish", "10"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestShouldColorizeNonFileWriter(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffer writers must not be colorized")
	}
}
