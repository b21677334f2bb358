// Package typist defines the narrow contract for auto-inserting a
// finalized transcript at the OS cursor. The core only depends on
// this interface; a real keyboard-simulation backend is an external
// collaborator out of scope for this repo.
package typist

import "github.com/beingmomen/dictation-core/internal/logger"

// Typist types text at the current OS text-input focus.
type Typist interface {
	TypeText(text string) error
}

// NoopTypist logs what would have been typed instead of driving a
// real keyboard-simulation backend. It is the default until a real
// implementation is wired in by the surrounding app.
type NoopTypist struct{}

// New creates the default logging Typist.
func New() *NoopTypist {
	return &NoopTypist{}
}

// TypeText logs the text instead of typing it.
func (t *NoopTypist) TypeText(text string) error {
	logger.WithField("chars", len(text)).Debug("typist: no keyboard backend wired, skipping auto-type")
	return nil
}
