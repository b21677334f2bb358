package hallucination

// containsPatterns are recurring ASR artifacts that may appear
// anywhere in a chunk's text: subscribe/credits taglines and narrator
// names picked up from the model's training data rather than the
// actual audio.
var containsPatterns = []string{
	"ترجمة",
	"نانسي",
	"قنقر",
	"شكرا لمشاهدتكم",
	"شكراً للمشاهدة",
	"شكرا للمشاهدة",
	"لا تنسى الاشتراك",
	"مشاهدة ممتعة",
	"تابعونا",
}

// exactPatterns reject a chunk only when the entire trimmed text
// equals one of these religious-formula or single-word artifacts;
// they are too short/common to reject as a CONTAINS substring without
// risking false positives on genuine speech.
var exactPatterns = []string{
	"أعوذ بالله من الشيطان الرجيم",
	"بسم الله الرحمن الرحيم",
	"السلام عليكم",
	"اشترك",
	"مرحبا بكم",
	"صوت",
}
