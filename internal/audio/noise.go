package audio

import "math"

// NoiseSuppressor runs an optional RNN-based denoiser over a 16kHz
// chunk, internally bridging to the 48kHz rate the model expects.
type NoiseSuppressor interface {
	Process(samples16k []float32) []float32
}

// NoopSuppressor is the always-available disabled state: it returns
// input unchanged, independent of the rnnoise build tag. Callers
// select it at session start when noise suppression is turned off in
// config, rather than linking the real denoiser unconditionally.
type NoopSuppressor struct{}

// NewNoopSuppressor returns a suppressor that never modifies samples.
func NewNoopSuppressor() *NoopSuppressor { return &NoopSuppressor{} }

func (NoopSuppressor) Process(samples16k []float32) []float32 { return samples16k }

const (
	noiseSuppressorInputRate   = 16000
	noiseSuppressorDenoiseRate = 48000
	pcmScale                   = 32767.0
)

// upsample3x bridges 16kHz to 48kHz via linear interpolation.
func upsample3x(samples []float32) []float32 {
	return Resample(samples, noiseSuppressorInputRate, noiseSuppressorDenoiseRate)
}

// downsample3x bridges 48kHz back to 16kHz by taking every third
// sample, matching the source denoiser's own decimation rather than
// averaging triplets.
func downsample3x(samples []float32) []float32 {
	out := make([]float32, 0, len(samples)/3+1)
	for i := 0; i < len(samples); i += 3 {
		out = append(out, samples[i])
	}
	return out
}

// hasNonFinite reports whether any sample is NaN or infinite.
func hasNonFinite(samples []float32) bool {
	for _, s := range samples {
		f := float64(s)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return true
		}
	}
	return false
}

func scaleToPCMRange(samples []float32) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = s * pcmScale
	}
	return out
}

func descaleFromPCMRange(samples []float32) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		v := s / pcmScale
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		out[i] = v
	}
	return out
}
