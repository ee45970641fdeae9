package config

const (
	defaultWorkDir          = "~/.local/share/clipscribe/audio"
	defaultLogDir           = "~/.local/share/clipscribe/logs"
	defaultLogLevel         = "info"
	defaultLogFormat        = "console"
	defaultDownloadBinary   = "yt-dlp"
	defaultAudioQuality     = "192"
	defaultMaxAttempts      = 3
	defaultBaseDelaySeconds = 1
	defaultWhisperBinary    = "whisper"
	defaultWhisperModel     = "medium"
	defaultArchivePath      = "~/.local/share/clipscribe/archive.db"
)

// WhisperModels is the accepted set for whisper.model and the run command's
// --model flag.
var WhisperModels = []string{"tiny", "base", "small", "medium", "large", "large-v2", "large-v3"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Download: Download{
			Binary:           defaultDownloadBinary,
			AudioQuality:     defaultAudioQuality,
			MaxAttempts:      defaultMaxAttempts,
			BaseDelaySeconds: defaultBaseDelaySeconds,
		},
		Whisper: Whisper{
			Binary: defaultWhisperBinary,
			Model:  defaultWhisperModel,
		},
		Archive: Archive{
			Enabled: false,
			Path:    defaultArchivePath,
		},
	}
}
