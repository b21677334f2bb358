package audio

import "testing"

func TestResample_IdentityRate(t *testing.T) {
	x := []float32{0.1, -0.2, 0.3, 0.4}
	got := Resample(x, 16000, 16000)
	for i := range x {
		if got[i] != x[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], x[i])
		}
	}
}

func TestResample_Upsample(t *testing.T) {
	x := []float32{0, 1, 0}
	got := Resample(x, 16000, 48000)
	if len(got) != 9 {
		t.Fatalf("len = %d, want 9", len(got))
	}
}

func TestDownmix_StereoAverage(t *testing.T) {
	stereo := []float32{1, 3, 2, 4, 0, 0}
	got := Downmix(stereo, 2)
	want := []float32{2, 3, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDownmix_MonoPassthrough(t *testing.T) {
	mono := []float32{1, 2, 3}
	got := Downmix(mono, 1)
	for i := range mono {
		if got[i] != mono[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], mono[i])
		}
	}
}
