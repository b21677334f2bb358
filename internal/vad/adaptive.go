package vad

import (
	"math"

	"github.com/beingmomen/dictation-core/internal/logger"
)

// AdaptiveDetector implements Detector using a noise floor calibrated
// from the leading edge of a session and a multiplicative threshold
// that slowly tracks ambient drift during silence.
type AdaptiveDetector struct {
	config Config

	calibrated        bool
	calibrationBuffer []float32
	calibrationTarget int

	noiseFloor      float32
	speechThreshold float32

	isSpeaking     bool
	silenceSamples int64
	speechSamples  int64
	totalSamples   int64
}

// NewAdaptiveDetector creates a detector with the given configuration
// already applied.
func NewAdaptiveDetector(config Config) *AdaptiveDetector {
	d := &AdaptiveDetector{}
	d.Initialize(config)
	return d
}

// Initialize resets the detector to its pre-calibration defaults.
func (d *AdaptiveDetector) Initialize(config Config) {
	if config.NoiseFloorCap <= 0 {
		config.NoiseFloorCap = 0.01
	}
	if config.MinSpeechThreshold <= 0 {
		config.MinSpeechThreshold = 0.003
	}
	if config.CalibrationSeconds <= 0 {
		config.CalibrationSeconds = 0.5
	}

	d.config = config
	d.calibrationTarget = int(float64(config.SampleRate) * config.CalibrationSeconds)
	d.calibrationBuffer = d.calibrationBuffer[:0]
	d.calibrated = false
	d.noiseFloor = 0.003
	d.speechThreshold = 0.009
	d.isSpeaking = false
	d.silenceSamples = 0
	d.speechSamples = 0
	d.totalSamples = 0
}

// Feed classifies one slice and updates internal counters.
func (d *AdaptiveDetector) Feed(samples []float32) bool {
	if len(samples) == 0 {
		return d.isSpeaking && d.calibrated
	}

	if !d.calibrated {
		d.calibrationBuffer = append(d.calibrationBuffer, samples...)
		if len(d.calibrationBuffer) < d.calibrationTarget {
			return false
		}
		d.calibrate()
		return false
	}

	d.totalSamples += int64(len(samples))

	rms := computeRMS(samples)
	isSpeech := rms > d.speechThreshold

	if isSpeech {
		d.speechSamples += int64(len(samples))
		d.silenceSamples = 0
	} else {
		d.silenceSamples += int64(len(samples))
		floor := d.noiseFloor*0.95 + rms*0.05
		if floor > d.config.NoiseFloorCap {
			floor = d.config.NoiseFloorCap
		}
		d.noiseFloor = floor
		d.speechThreshold = speechThresholdFor(floor, d.config.MinSpeechThreshold)
	}

	d.isSpeaking = isSpeech
	return isSpeech
}

// calibrate establishes the noise floor from the accumulated leading
// samples and discards the calibration buffer.
func (d *AdaptiveDetector) calibrate() {
	floor := computeRMS(d.calibrationBuffer)
	if floor > d.config.NoiseFloorCap {
		floor = d.config.NoiseFloorCap
	}
	d.noiseFloor = floor
	d.speechThreshold = speechThresholdFor(floor, d.config.MinSpeechThreshold)
	d.calibrated = true
	d.calibrationBuffer = nil

	logger.WithFields(map[string]interface{}{
		"noise_floor":      d.noiseFloor,
		"speech_threshold": d.speechThreshold,
	}).Debug("vad calibrated")
}

// speechThresholdFor derives the decision threshold from a noise
// floor: three times the floor, never below the configured minimum.
func speechThresholdFor(floor, min float32) float32 {
	t := floor * 3.0
	if t < min {
		return min
	}
	return t
}

func computeRMS(samples []float32) float32 {
	if len(samples) == 0 {
		return 0
	}
	var sumSq float64
	for _, s := range samples {
		sumSq += float64(s) * float64(s)
	}
	return float32(math.Sqrt(sumSq / float64(len(samples))))
}

// IsSpeaking reports the most recent classification.
func (d *AdaptiveDetector) IsSpeaking() bool { return d.isSpeaking }

// Calibrated reports whether calibration has completed.
func (d *AdaptiveDetector) Calibrated() bool { return d.calibrated }

// NoiseFloor returns the current noise floor RMS.
func (d *AdaptiveDetector) NoiseFloor() float32 { return d.noiseFloor }

// SpeechThreshold returns the current decision threshold.
func (d *AdaptiveDetector) SpeechThreshold() float32 { return d.speechThreshold }

// SilenceDurationSecs converts the accumulated silence sample count to
// seconds using the configured sample rate.
func (d *AdaptiveDetector) SilenceDurationSecs() float64 {
	if d.config.SampleRate == 0 {
		return 0
	}
	return float64(d.silenceSamples) / float64(d.config.SampleRate)
}

// SpeechRatio returns the lifetime fraction of samples classified as
// speech, or 0 if nothing has been fed yet.
func (d *AdaptiveDetector) SpeechRatio() float64 {
	if d.totalSamples == 0 {
		return 0
	}
	return float64(d.speechSamples) / float64(d.totalSamples)
}

// Reset restores default thresholds and counters for a fresh session.
func (d *AdaptiveDetector) Reset() {
	d.Initialize(d.config)
}
