package audio

import (
	"math"
	"testing"
)

func TestPreprocessor_RMSNormalizeSkipsNearSilence(t *testing.T) {
	p := NewPreprocessor()
	quiet := []float32{1e-9, -1e-9, 1e-9}
	got := p.Process(quiet)
	if len(got) != len(quiet) {
		t.Fatalf("len = %d, want %d", len(got), len(quiet))
	}
}

func TestPreprocessor_OutputClampedToUnitRange(t *testing.T) {
	p := NewPreprocessor()
	loud := make([]float32, 1000)
	for i := range loud {
		if i%2 == 0 {
			loud[i] = 10
		} else {
			loud[i] = -10
		}
	}
	got := p.Process(loud)
	for i, s := range got {
		if s > 1 || s < -1 {
			t.Fatalf("sample %d = %v, want within [-1,1]", i, s)
		}
	}
}

func TestRMSNormalize_TargetLoudness(t *testing.T) {
	x := make([]float32, 1600)
	for i := range x {
		if i%2 == 0 {
			x[i] = 1
		} else {
			x[i] = -1
		}
	}
	out := rmsNormalize(append([]float32(nil), x...))

	var sumSq float64
	for _, s := range out {
		sumSq += float64(s) * float64(s)
	}
	rms := math.Sqrt(sumSq / float64(len(out)))
	if math.Abs(rms-rmsNormalizeTarget) > 1e-4 {
		t.Errorf("rms = %v, want ~%v", rms, rmsNormalizeTarget)
	}
}

func TestHighPassFilter_Empty(t *testing.T) {
	if got := highPassFilter(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}
