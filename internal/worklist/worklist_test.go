package worklist_test

import (
	"os"
	"path/filepath"
	"testing"

	"clipscribe/internal/worklist"
)

func TestLoadSkipsCommentsAndBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	contents := `# batch from 2026-08-20
https://www.tiktok.com/@a/video/1

  https://www.tiktok.com/@b/video/2
# trailing comment
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	urls, err := worklist.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{
		"https://www.tiktok.com/@a/video/1",
		"https://www.tiktok.com/@b/video/2",
	}
	if len(urls) != len(want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Fatalf("urls = %v, want %v", urls, want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := worklist.Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmptyFileYieldsNoURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte("\n# only comments\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	urls, err := worklist.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("urls = %v, want none", urls)
	}
}
