// Package audio owns the capture buffer, device capture
// implementations, and the signal-processing chain (resample,
// downmix, preprocess, noise suppression) applied to captured PCM.
package audio

// Config describes the negotiated device parameters for a session.
type Config struct {
	SampleFormat string // always "f32" once negotiation succeeds
	SampleRate   int
	Channels     int
}

// DeviceInfo names an enumerable capture device.
type DeviceInfo struct {
	Name      string
	IsDefault bool
}

// Capture opens a system input device and streams samples into a
// Buffer. The device callback must never block: it only appends to
// the buffer and returns, dropping frames silently on overflow.
type Capture interface {
	// ListDevices enumerates available capture devices.
	ListDevices() ([]DeviceInfo, error)

	// SetDevice selects a device by name for the next Start call. An
	// empty name means "use the default device".
	SetDevice(name string)

	// Start opens the device, negotiates a format, and begins
	// appending samples to buf until Stop is called.
	Start(buf *Buffer) (Config, error)

	// Stop halts the device callback and releases the device handle.
	// It does not touch the buffer; callers read it separately.
	Stop() error
}
