//go:build !rnnoise

package audio

import "github.com/beingmomen/dictation-core/internal/logger"

// PassthroughSuppressor is the default NoiseSuppressor: it returns
// input unchanged. Build with -tags rnnoise to link the real RNN
// denoiser instead.
type PassthroughSuppressor struct {
	warned bool
}

// NewNoiseSuppressor returns the pass-through suppressor used when the
// module is built without the rnnoise tag.
func NewNoiseSuppressor() (NoiseSuppressor, error) {
	logger.Warn("noise suppression disabled (build with -tags rnnoise to enable)")
	return &PassthroughSuppressor{}, nil
}

func (p *PassthroughSuppressor) Process(samples16k []float32) []float32 {
	return samples16k
}
