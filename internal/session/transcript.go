package session

import "strings"

// Fragment is one accepted chunk of streamed text.
type Fragment struct {
	ChunkIndex int
	Text       string
}

// Transcript accumulates fragments in chunk_index order. It is not
// safe for concurrent use; callers serialize access the same way the
// scheduler is single-threaded per session.
type Transcript struct {
	fragments []Fragment
}

// Append adds a fragment. Callers are responsible for only appending
// fragments already accepted by the hallucination filter.
func (t *Transcript) Append(chunkIndex int, text string) {
	t.fragments = append(t.fragments, Fragment{ChunkIndex: chunkIndex, Text: text})
}

// Fragments returns the accumulated fragments in insertion order.
func (t *Transcript) Fragments() []Fragment {
	return t.fragments
}

// Empty reports whether no fragment has been accepted yet.
func (t *Transcript) Empty() bool {
	return len(t.fragments) == 0
}

// Join concatenates fragment texts with a single space separator.
func (t *Transcript) Join() string {
	parts := make([]string, len(t.fragments))
	for i, f := range t.fragments {
		parts[i] = f.Text
	}
	return strings.Join(parts, " ")
}

// Clear resets the transcript for a new session.
func (t *Transcript) Clear() {
	t.fragments = nil
}
