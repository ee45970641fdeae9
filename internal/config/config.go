package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sethvargo/go-envconfig"
)

//go:embed sample_config.toml
var sampleConfig string

// EnvPrefix is applied to every environment override, e.g.
// CLIPSCRIBE_WHISPER_MODEL.
const EnvPrefix = "CLIPSCRIBE_"

// Paths contains directory configuration.
type Paths struct {
	// WorkDir holds transient downloaded audio; files live only for the
	// duration of one item.
	WorkDir string `toml:"work_dir" env:"WORK_DIR"`
	LogDir  string `toml:"log_dir" env:"LOG_DIR"`
}

// Logging controls structured log output.
type Logging struct {
	Level  string `toml:"level" env:"LOG_LEVEL"`
	Format string `toml:"format" env:"LOG_FORMAT"`
}

// Download configures the yt-dlp media fetch capability, including its retry
// policy. Retries apply only to this stage; metadata and transcription are
// fail-fast.
type Download struct {
	Binary             string `toml:"binary" env:"YTDLP_BINARY"`
	CookiesFromBrowser string `toml:"cookies_from_browser" env:"COOKIES_FROM_BROWSER"`
	AudioQuality       string `toml:"audio_quality" env:"AUDIO_QUALITY"`
	MaxAttempts        int    `toml:"max_attempts" env:"DOWNLOAD_MAX_ATTEMPTS"`
	BaseDelaySeconds   int    `toml:"base_delay_seconds" env:"DOWNLOAD_BASE_DELAY_SECONDS"`
}

// Whisper configures the transcription capability.
type Whisper struct {
	Binary string `toml:"binary" env:"WHISPER_BINARY"`
	Model  string `toml:"model" env:"WHISPER_MODEL"`
}

// Archive configures the optional cross-run transcript archive.
type Archive struct {
	Enabled bool   `toml:"enabled" env:"ARCHIVE_ENABLED"`
	Path    string `toml:"path" env:"ARCHIVE_PATH"`
}

// Config encapsulates all configuration values for clipscribe.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Logging  Logging  `toml:"logging"`
	Download Download `toml:"download"`
	Whisper  Whisper  `toml:"whisper"`
	Archive  Archive  `toml:"archive"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/clipscribe/config.toml")
}

// Load locates, parses, and validates a configuration file, then applies
// environment overrides. The returned config has all path fields expanded
// and normalized. The boolean reports whether a config file was found.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, envconfig.OsLookuper()),
	}); err != nil {
		return nil, "", false, fmt.Errorf("apply environment overrides: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("clipscribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Archive.Enabled && strings.TrimSpace(c.Archive.Path) != "" {
		if err := os.MkdirAll(filepath.Dir(c.Archive.Path), 0o755); err != nil {
			return fmt.Errorf("create archive directory: %w", err)
		}
	}
	return nil
}

// SampleConfig returns the annotated sample configuration written by
// "clipscribe config init".
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the annotated sample configuration to the target path.
func CreateSample(path string) error {
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
