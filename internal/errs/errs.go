// Package errs defines the sentinel error kinds shared across the
// dictation pipeline so callers can branch on error identity with
// errors.Is instead of string matching.
package errs

import "errors"

var (
	ErrDeviceUnavailable   = errors.New("audio device unavailable")
	ErrUnsupportedFormat   = errors.New("audio device does not support a usable sample format")
	ErrModelNotLoaded      = errors.New("whisper model not loaded")
	ErrModelLoadFailed     = errors.New("whisper model failed to load")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrAlreadyRecording    = errors.New("session is already recording")
	ErrNotRecording        = errors.New("session is not recording")
	ErrNetwork             = errors.New("network error")
	ErrLock                = errors.New("failed to acquire shared state lock")
	ErrInvariant           = errors.New("internal invariant violated")
)
