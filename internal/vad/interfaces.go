// Package vad implements the adaptive voice-activity detector that
// gates which captured audio slices are worth sending to the ASR.
package vad

// Detector classifies audio slices as speech or silence against a
// noise floor calibrated at the start of a session.
type Detector interface {
	// Initialize resets the detector to its pre-calibration state with
	// the given configuration.
	Initialize(config Config)

	// Feed classifies one slice of samples. It returns false for every
	// slice fed before calibration completes.
	Feed(samples []float32) bool

	// IsSpeaking reports whether the most recent Feed call was speech.
	IsSpeaking() bool

	// Calibrated reports whether the noise floor has been established.
	Calibrated() bool

	// NoiseFloor returns the current adaptive noise floor RMS.
	NoiseFloor() float32

	// SpeechThreshold returns the current speech decision threshold.
	SpeechThreshold() float32

	// SilenceDurationSecs returns the accumulated silence duration, in
	// seconds, since the last speech slice (or since calibration
	// completed if no speech has occurred yet).
	SilenceDurationSecs() float64

	// SpeechRatio returns speech_samples / total_samples across the
	// lifetime of the session, or 0 if no samples have been fed.
	SpeechRatio() float64

	// Reset restores default thresholds and counters, discarding
	// calibration, for a fresh session.
	Reset()
}

// Config holds the tunables for the adaptive detector.
type Config struct {
	SampleRate int

	// CalibrationSeconds is the amount of leading audio used to
	// establish the noise floor (spec default: 0.5s).
	CalibrationSeconds float64

	// NoiseFloorCap bounds the calibrated (and subsequently adapted)
	// noise floor so a loud start to a session cannot permanently
	// raise the speech threshold.
	NoiseFloorCap float32

	// MinSpeechThreshold is the hard floor under which the speech
	// threshold never falls, even over an anechoic noise floor.
	MinSpeechThreshold float32
}

// DefaultConfig returns the spec-mandated tunables for sampleRate.
func DefaultConfig(sampleRate int) Config {
	return Config{
		SampleRate:         sampleRate,
		CalibrationSeconds: 0.5,
		NoiseFloorCap:      0.01,
		MinSpeechThreshold: 0.003,
	}
}
