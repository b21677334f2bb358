package audio

import "testing"

func TestBuffer_AppendAndSnapshot(t *testing.T) {
	b := NewBuffer(16000, 1)
	b.Append([]float32{1, 2, 3})
	b.Append([]float32{4, 5})

	got := b.Snapshot()
	want := []float32{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
	if b.Len() != 5 {
		t.Errorf("Len() = %d, want 5", b.Len())
	}
}

func TestBuffer_ClearResetsCursor(t *testing.T) {
	b := NewBuffer(16000, 1)
	b.Append([]float32{1, 2, 3})
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", b.Len())
	}
}

func TestBuffer_RangeClampsBounds(t *testing.T) {
	b := NewBuffer(16000, 1)
	b.Append([]float32{1, 2, 3, 4, 5})

	got := b.Range(-10, 3)
	want := []float32{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}

	if got := b.Range(2, 100); len(got) != 3 {
		t.Errorf("Range(2,100) len = %d, want 3", len(got))
	}

	if got := b.Range(10, 20); got != nil {
		t.Errorf("Range past end = %v, want nil", got)
	}
}

func TestBuffer_AppendDropsOnOverflow(t *testing.T) {
	b := &Buffer{cap: 4, rate: 16000, channels: 1}
	b.Append([]float32{1, 2, 3, 4, 5, 6})
	if got := b.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4 (overflow silently dropped)", got)
	}
}

func TestBuffer_LevelClampedToUnitRange(t *testing.T) {
	b := NewBuffer(16000, 1)
	loud := make([]float32, LevelWindowSamples)
	for i := range loud {
		loud[i] = 5.0
	}
	b.Append(loud)

	if got := b.Level(); got != 1 {
		t.Errorf("Level() = %v, want clamped to 1", got)
	}
}

func TestBuffer_LevelEmptyIsZero(t *testing.T) {
	b := NewBuffer(16000, 1)
	if got := b.Level(); got != 0 {
		t.Errorf("Level() on empty buffer = %v, want 0", got)
	}
}
