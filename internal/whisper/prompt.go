package whisper

// PromptForLanguage returns the priming sentence set as the initial
// prompt for a language, discouraging the model from producing
// credits/song/subtitle output instead of an actual transcription.
// Any language other than English falls back to the Arabic prompt,
// matching the catalogue's original Arabic-first locale assumption.
func PromptForLanguage(language string) string {
	if language == "en" {
		return "Voice dictation in English. The text contains complete sentences with proper punctuation. No songs, music, or subtitles."
	}
	return "إملاء صوتي باللغة العربية الفصحى والعامية. النص يحتوي على جمل كاملة مع علامات ترقيم صحيحة، ولا يحتوي على أناشيد أو موسيقى أو ترجمات."
}
