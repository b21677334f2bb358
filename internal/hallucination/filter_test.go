package hallucination

import "testing"

func TestIsHallucination_Empty(t *testing.T) {
	if !IsHallucination("", 1.0) {
		t.Error("expected empty text to be rejected")
	}
	if !IsHallucination("   ", 1.0) {
		t.Error("expected whitespace-only text to be rejected")
	}
}

func TestIsHallucination_SingleChar(t *testing.T) {
	if !IsHallucination("a", 1.0) {
		t.Error("expected a single character to be rejected")
	}
}

func TestIsHallucination_ShortForLongDuration(t *testing.T) {
	if !IsHallucination("ok", 3.0) {
		t.Error("expected a 2-char result over a 3s chunk to be rejected")
	}
	if IsHallucination("ok!", 3.0) {
		t.Error("expected a 3-char result over a 3s chunk to be accepted")
	}
	if IsHallucination("ok", 1.0) {
		t.Error("expected a 2-char result over a short chunk to be accepted")
	}
}

func TestIsHallucination_ContainsPattern(t *testing.T) {
	if !IsHallucination("نص عادي شكرا لمشاهدتكم", 2.0) {
		t.Error("expected a CONTAINS pattern to reject the whole chunk")
	}
}

func TestIsHallucination_ExactPattern(t *testing.T) {
	if !IsHallucination("السلام عليكم", 2.0) {
		t.Error("expected an EXACT pattern match to be rejected")
	}
	if IsHallucination("وعليكم السلام ورحمة الله", 2.0) {
		t.Error("expected text merely containing an EXACT pattern as a substring to be accepted")
	}
}

func TestIsHallucination_UniformChar(t *testing.T) {
	if !IsHallucination("aaaa", 1.0) {
		t.Error("expected uniform-character text to be rejected")
	}
	if !IsHallucination("a a a", 1.0) {
		t.Error("expected uniform character with spaces to be rejected")
	}
}

func TestIsHallucination_LoopOutput(t *testing.T) {
	if !IsHallucination("w w w w", 1.0) {
		t.Error("expected repeated-token loop output to be rejected")
	}
	if IsHallucination("the quick brown fox jumps", 1.0) {
		t.Error("expected varied words to be accepted")
	}
}

func TestIsHallucination_NormalSentence(t *testing.T) {
	if IsHallucination("هذا نص حقيقي من المستخدم", 4.0) {
		t.Error("expected genuine speech to be accepted")
	}
}

func TestCleanTrailing_RemovesTaglineSuffix(t *testing.T) {
	got := CleanTrailing("real sentence. شكرا للمشاهدة")
	want := "real sentence"
	if got != want {
		t.Errorf("CleanTrailing() = %q, want %q", got, want)
	}
}

func TestCleanTrailing_Idempotent(t *testing.T) {
	in := "real sentence. شكرا للمشاهدة"
	once := CleanTrailing(in)
	twice := CleanTrailing(once)
	if once != twice {
		t.Errorf("CleanTrailing not idempotent: once=%q twice=%q", once, twice)
	}
}

func TestCleanTrailing_NoSuffixUnchanged(t *testing.T) {
	in := "a plain sentence with no tagline"
	if got := CleanTrailing(in); got != in {
		t.Errorf("CleanTrailing() = %q, want unchanged %q", got, in)
	}
}

func TestCleanTrailing_WholeStringIsPattern(t *testing.T) {
	if got := CleanTrailing("اشترك"); got != "" {
		t.Errorf("CleanTrailing() = %q, want empty", got)
	}
}

func TestCleanTrailing_RequiresBoundaryBeforeSuffix(t *testing.T) {
	in := "نصاشترك"
	if got := CleanTrailing(in); got != in {
		t.Errorf("CleanTrailing() = %q, want unchanged %q (no boundary before pattern)", got, in)
	}
}
