package whisper

import (
	"testing"
)

func TestParseResultRoundsAndTrims(t *testing.T) {
	raw := `{
		"text": "  hello world  ",
		"segments": [
			{"start": 0.0, "end": 1.23456, "text": " hello "},
			{"start": 1.23456, "end": 2.999, "text": " world "}
		],
		"language": "en"
	}`
	transcript, err := parseResult([]byte(raw))
	if err != nil {
		t.Fatalf("parseResult: %v", err)
	}
	if transcript.Text != "hello world" {
		t.Fatalf("text = %q", transcript.Text)
	}
	if transcript.Language != "en" {
		t.Fatalf("language = %q", transcript.Language)
	}
	if len(transcript.Segments) != 2 {
		t.Fatalf("segments = %d", len(transcript.Segments))
	}
	if transcript.Segments[0].End != 1.23 {
		t.Fatalf("segment end = %v, want 1.23", transcript.Segments[0].End)
	}
	if transcript.Segments[1].End != 3.0 {
		t.Fatalf("segment end = %v, want 3.0", transcript.Segments[1].End)
	}
	if transcript.Segments[0].Text != "hello" {
		t.Fatalf("segment text = %q", transcript.Segments[0].Text)
	}
}

func TestParseResultDefaultsLanguage(t *testing.T) {
	transcript, err := parseResult([]byte(`{"text":"x","segments":[]}`))
	if err != nil {
		t.Fatalf("parseResult: %v", err)
	}
	if transcript.Language != "unknown" {
		t.Fatalf("language = %q, want unknown", transcript.Language)
	}
}

func TestParseResultRejectsGarbage(t *testing.T) {
	if _, err := parseResult([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestStem(t *testing.T) {
	if got := stem("/tmp/audio/7234.mp3"); got != "7234" {
		t.Fatalf("stem = %q", got)
	}
	if got := stem("noext"); got != "noext" {
		t.Fatalf("stem = %q", got)
	}
}
