package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks failures reported by an external binary.
	ErrExternalTool = errors.New("external tool error")
	// ErrValidation marks bad input that no retry can fix.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrTerminal marks per-item failures that must never be retried.
	ErrTerminal = errors.New("terminal failure")
	// ErrTransient marks failures worth retrying under backoff.
	ErrTransient = errors.New("transient failure")
	// ErrPersistence marks checkpoint write failures; these abort the run.
	ErrPersistence = errors.New("persistence failure")
)

var markers = []error{
	ErrExternalTool,
	ErrValidation,
	ErrConfiguration,
	ErrTerminal,
	ErrTransient,
	ErrPersistence,
}

// Wrap builds an error message that includes capability context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Terminal tags a bare reason string as a non-retryable item failure.
func Terminal(reason string) error {
	return fmt.Errorf("%w: %s", ErrTerminal, reason)
}

// Transient tags a reason as retryable, preserving the underlying error.
func Transient(reason string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTransient, reason, err)
	}
	return fmt.Errorf("%w: %s", ErrTransient, reason)
}

// IsTerminal reports whether the error is classified as unrecoverable for the
// item it belongs to.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrTerminal) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConfiguration)
}

// Reason extracts the human-readable failure reason recorded in item
// outcomes. Everything up to and including the last classification marker is
// stripped, so wrappers added around a marked error (retry exhaustion, stage
// context) never leak into the recorded reason.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.TrimSpace(err.Error())
	cut := 0
	for _, marker := range markers {
		token := marker.Error() + ": "
		if idx := strings.LastIndex(msg, token); idx >= 0 && idx+len(token) > cut {
			cut = idx + len(token)
		}
	}
	msg = strings.TrimSpace(msg[cut:])
	if msg == "" {
		return "unknown error"
	}
	for _, marker := range markers {
		if msg == marker.Error() {
			return "unknown error"
		}
	}
	return msg
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
