// Package refiner wraps an optional external text post-processor that
// cleans spelling, grammar, and punctuation in a finalized transcript.
// It is pure post-processing: failures always degrade to the
// unrefined text rather than affecting transcript correctness.
package refiner

import "context"

// Refiner is the capability the session's post-processing step
// depends on. A caller-supplied HTTP endpoint is the only
// implementation; tests use a stub.
type Refiner interface {
	// Refine returns a cleaned-up version of text in the given
	// language. On any failure it returns the original text unchanged
	// alongside a non-nil error; callers must never surface that error
	// to the user, only log it and keep the original text.
	Refine(ctx context.Context, text, language string) (string, error)
}
