package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"clipscribe/internal/config"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.Level = "error"
	cfgVal.Archive.Path = filepath.Join(base, "archive.db")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, &cfgVal)

	return &cliTestEnv{
		cfg:        &cfgVal,
		configPath: configPath,
		baseDir:    base,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

const ytdlpStub = `#!/bin/sh
mode=download
for arg in "$@"; do
    [ "$arg" = "-J" ] && mode=metadata
done
if [ "$mode" = "metadata" ]; then
    printf '%s\n' '{"title":"Stub Video","uploader":"stub","upload_date":"20240102","duration":1.5}'
    exit 0
fi
out=""
prev=""
for arg in "$@"; do
    if [ "$prev" = "-o" ]; then out=$arg; fi
    prev=$arg
done
out=$(printf '%s' "$out" | sed 's/%(ext)s/mp3/')
printf 'audio' > "$out"
`

const whisperStub = `#!/bin/sh
audio=$1
outdir=""
prev=""
for arg in "$@"; do
    if [ "$prev" = "--output_dir" ]; then outdir=$arg; fi
    prev=$arg
done
base=$(basename "$audio")
stem=${base%.*}
printf '%s\n' '{"text":" stub transcript ","segments":[{"start":0.0,"end":1.234567,"text":" stub "}],"language":"en"}' > "$outdir/$stem.json"
`

// makeStubTools installs working stand-ins for yt-dlp, ffmpeg, and whisper
// and prepends them to PATH for the duration of the test.
func makeStubTools(t *testing.T, baseDir string) {
	t.Helper()
	binDir := filepath.Join(baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("create stub bin dir: %v", err)
	}
	stubs := map[string]string{
		"yt-dlp":  ytdlpStub,
		"whisper": whisperStub,
		"ffmpeg":  "#!/bin/sh\nexit 0\n",
	}
	for name, script := range stubs {
		if err := os.WriteFile(filepath.Join(binDir, name), []byte(script), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
