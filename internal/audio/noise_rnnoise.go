//go:build rnnoise

package audio

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/audio/pkg/noisesuppression/implementations/rnnoise"

	"github.com/beingmomen/dictation-core/internal/logger"
)

// rnnoiseFrameSize is 10ms at the denoiser's native 48kHz rate.
const rnnoiseFrameSize = 480

// RNNoiseSuppressor denoises 16kHz chunks by bridging to the RNNoise
// model's native 48kHz rate: upsample, scale to PCM range, run the
// denoiser over fixed frames (padding the remainder with zeros),
// descale, and downsample back. Any non-finite output sample aborts
// the denoise and the original chunk is returned unchanged.
type RNNoiseSuppressor struct {
	denoiser *rnnoise.RNNoise
}

// NewNoiseSuppressor constructs the real RNNoise-backed suppressor.
func NewNoiseSuppressor() (NoiseSuppressor, error) {
	denoiser, err := rnnoise.New(audio.Channel(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create rnnoise denoiser: %w", err)
	}
	logger.Info("noise suppression active (rnnoise, 16kHz <-> 48kHz bridge)")
	return &RNNoiseSuppressor{denoiser: denoiser}, nil
}

func (r *RNNoiseSuppressor) Process(samples16k []float32) []float32 {
	if len(samples16k) == 0 {
		return samples16k
	}

	upsampled := upsample3x(samples16k)
	scaled := scaleToPCMRange(upsampled)

	denoised := make([]float32, 0, len(scaled))
	ctx := context.Background()

	for offset := 0; offset < len(scaled); offset += rnnoiseFrameSize {
		end := offset + rnnoiseFrameSize
		var frame []float32
		if end <= len(scaled) {
			frame = scaled[offset:end]
		} else {
			frame = make([]float32, rnnoiseFrameSize)
			copy(frame, scaled[offset:])
		}

		inBytes := Float32ToBytes(frame)
		outBytes := make([]byte, len(inBytes))
		if _, err := r.denoiser.SuppressNoise(ctx, inBytes, outBytes); err != nil {
			logger.WithError(err).Warn("rnnoise processing failed, passing audio through unchanged")
			return samples16k
		}
		denoised = append(denoised, BytesToFloat32(outBytes)...)
	}

	if hasNonFinite(denoised) {
		logger.Warn("rnnoise produced non-finite samples, discarding denoised output")
		return samples16k
	}

	descaled := descaleFromPCMRange(denoised)
	result := downsample3x(descaled)
	if len(result) > len(samples16k) {
		result = result[:len(samples16k)]
	}
	return result
}
