package audio

import "math"

const (
	highPassAlpha      = 0.995
	rmsNormalizeTarget = 0.05
	rmsNormalizeMinRMS = 1e-8
	preEmphasisCoeff   = 0.97
)

// Preprocessor applies the speech-conditioning chain run on every
// chunk before it reaches the transcriber: a single-pole high-pass
// filter, RMS normalization to a target loudness, and first-order
// pre-emphasis applied back-to-front.
type Preprocessor struct{}

// NewPreprocessor returns a stateless preprocessor; each Process call
// operates independently on the chunk it is given.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

// Process runs the full chain and returns a new slice; the input is
// never mutated.
func (p *Preprocessor) Process(samples []float32) []float32 {
	out := highPassFilter(samples)
	out = rmsNormalize(out)
	preEmphasize(out)
	return out
}

// highPassFilter implements y[n] = alpha*(y[n-1] + x[n] - x[n-1]).
func highPassFilter(x []float32) []float32 {
	if len(x) == 0 {
		return nil
	}
	y := make([]float32, len(x))
	y[0] = x[0]
	for n := 1; n < len(x); n++ {
		y[n] = highPassAlpha * (y[n-1] + x[n] - x[n-1])
	}
	return y
}

// rmsNormalize scales samples so their RMS matches rmsNormalizeTarget,
// leaving near-silent input untouched, and clamps the result to
// [-1, 1].
func rmsNormalize(x []float32) []float32 {
	if len(x) == 0 {
		return x
	}
	var sumSq float64
	for _, s := range x {
		sumSq += float64(s) * float64(s)
	}
	rms := math.Sqrt(sumSq / float64(len(x)))
	if rms < rmsNormalizeMinRMS {
		return x
	}

	gain := float32(rmsNormalizeTarget / rms)
	for i, s := range x {
		v := s * gain
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		x[i] = v
	}
	return x
}

// preEmphasize applies x[n] -= coeff*x[n-1] in reverse sample order so
// each subtraction uses the original (not yet emphasized) predecessor.
func preEmphasize(x []float32) {
	for n := len(x) - 1; n >= 1; n-- {
		x[n] -= preEmphasisCoeff * x[n-1]
	}
}
