// Package hallucination filters ASR output that is not grounded in
// the audio: canned taglines, religious formulae, and repeated-token
// loop artifacts that Whisper-family models tend to emit on silence
// or near-silence input.
package hallucination

import (
	"strings"
	"unicode/utf8"
)

// trailingPunctuation are characters CleanTrailing strips before
// checking for a pattern suffix, covering both Latin and Arabic
// sentence-final marks.
const trailingPunctuation = " \n.,،!؟:;"

// Filter applies the curated pattern lists and structural heuristics
// described by IsHallucination and CleanTrailing. It holds no state;
// a zero value is ready to use.
type Filter struct{}

// New creates a Filter.
func New() *Filter {
	return &Filter{}
}

// IsHallucination reports whether text should be rejected as ASR
// noise rather than appended to the transcript. durationSecs is the
// duration of the audio that produced text, used to tighten the
// minimum-length check on longer chunks that still produced almost
// nothing.
func (f *Filter) IsHallucination(text string, durationSecs float64) bool {
	return IsHallucination(text, durationSecs)
}

// CleanTrailing strips a canned pattern suffix appended after the
// real utterance, idempotently.
func (f *Filter) CleanTrailing(text string) string {
	return CleanTrailing(text)
}

// IsHallucination is the package-level form of Filter.IsHallucination.
func IsHallucination(text string, durationSecs float64) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}

	runeCount := utf8.RuneCountInString(trimmed)
	if runeCount < 2 {
		return true
	}
	if durationSecs > 2 && runeCount < 3 {
		return true
	}

	for _, p := range containsPatterns {
		if strings.Contains(trimmed, p) {
			return true
		}
	}
	for _, p := range exactPatterns {
		if trimmed == p {
			return true
		}
	}

	if isUniformChar(trimmed) {
		return true
	}
	if isLoopOutput(trimmed) {
		return true
	}

	return false
}

// isUniformChar reports whether every rune (ignoring spaces) in a
// string longer than two runes is the same character.
func isUniformChar(trimmed string) bool {
	runes := []rune(trimmed)
	if len(runes) <= 2 {
		return false
	}
	first := runes[0]
	for _, r := range runes {
		if r != first && r != ' ' {
			return false
		}
	}
	return true
}

// isLoopOutput reports whether a text of at least 4 whitespace-
// separated tokens has a single token repeated in more than half the
// slots, the signature of a model stuck decoding the same token.
func isLoopOutput(trimmed string) bool {
	words := strings.Fields(trimmed)
	if len(words) < 4 {
		return false
	}
	counts := make(map[string]int, len(words))
	max := 0
	for _, w := range words {
		counts[w]++
		if counts[w] > max {
			max = counts[w]
		}
	}
	return max*2 > len(words)
}

// CleanTrailing is the package-level form of Filter.CleanTrailing. It
// repeatedly strips trailing punctuation followed by a CONTAINS/EXACT
// pattern, as long as the pattern is preceded by a space, a
// line-break, or the start of the string, until no further change
// occurs.
func CleanTrailing(text string) string {
	for {
		stripped := strings.TrimRight(text, trailingPunctuation)
		next, matched := stripTrailingPattern(stripped)
		if !matched {
			return text
		}
		if next == text {
			return next
		}
		text = next
	}
}

func stripTrailingPattern(s string) (string, bool) {
	for _, p := range allPatterns() {
		if p == "" || !strings.HasSuffix(s, p) {
			continue
		}
		idx := len(s) - len(p)
		if idx == 0 {
			return "", true
		}
		prefix := s[:idx]
		r, _ := utf8.DecodeLastRuneInString(prefix)
		if r == ' ' || r == '\n' {
			return strings.TrimRight(prefix, trailingPunctuation), true
		}
	}
	return s, false
}

func allPatterns() []string {
	patterns := make([]string, 0, len(containsPatterns)+len(exactPatterns))
	patterns = append(patterns, containsPatterns...)
	patterns = append(patterns, exactPatterns...)
	return patterns
}
