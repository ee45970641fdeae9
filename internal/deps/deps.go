// Package deps verifies the external tools clipscribe shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"clipscribe/internal/config"
)

// Requirement defines an external dependency clipscribe relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Default returns the requirements for the configured toolchain. yt-dlp and
// whisper are the pipeline itself; ffmpeg is required by yt-dlp for audio
// extraction so a missing install surfaces here rather than mid-batch.
func Default(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.Download.Binary,
			Description: "fetches video metadata and audio",
		},
		{
			Name:        "ffmpeg",
			Command:     "ffmpeg",
			Description: "extracts mp3 audio during download",
		},
		{
			Name:        "whisper",
			Command:     cfg.Whisper.Binary,
			Description: "transcribes downloaded audio",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of required dependencies that are not
// available.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
