package audio

import (
	"fmt"

	"github.com/gen2brain/malgo"

	"github.com/beingmomen/dictation-core/internal/errs"
	"github.com/beingmomen/dictation-core/internal/logger"
)

// candidateConfig is one entry in the device negotiation order from
// spec §4.1: f32/mono/16kHz first, then f32 at the device's own
// channel count, then whatever the device defaults to.
type candidateConfig struct {
	channels   int // 0 means "let the device choose"
	sampleRate int // 0 means "let the device choose"
}

var negotiationOrder = []candidateConfig{
	{channels: 1, sampleRate: 16000},
	{channels: 0, sampleRate: 16000},
	{channels: 0, sampleRate: 0},
}

// MalgoCapture captures audio from a real input device via miniaudio
// bindings, negotiating the narrowest usable format first.
type MalgoCapture struct {
	ctx        *malgo.AllocatedContext
	device     *malgo.Device
	deviceName string
}

// NewMalgoCapture allocates the miniaudio context. Call Close when the
// capture host is no longer needed.
func NewMalgoCapture() (*MalgoCapture, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDeviceUnavailable, err)
	}
	return &MalgoCapture{ctx: ctx}, nil
}

// SetDevice selects a device by name for the next Start call.
func (c *MalgoCapture) SetDevice(name string) {
	c.deviceName = name
}

// ListDevices enumerates input devices known to the host.
func (c *MalgoCapture) ListDevices() ([]DeviceInfo, error) {
	infos, err := c.ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDeviceUnavailable, err)
	}
	out := make([]DeviceInfo, 0, len(infos))
	for i, info := range infos {
		out = append(out, DeviceInfo{Name: info.Name(), IsDefault: i == 0})
	}
	return out, nil
}

// Start opens the selected device, negotiating the candidate configs
// in order, and begins appending f32 samples into buf.
func (c *MalgoCapture) Start(buf *Buffer) (Config, error) {
	infos, err := c.ctx.Devices(malgo.Capture)
	if err != nil || len(infos) == 0 {
		return Config{}, errs.ErrDeviceUnavailable
	}

	target := infos[0]
	if c.deviceName != "" {
		found := false
		for _, info := range infos {
			if info.Name() == c.deviceName {
				target = info
				found = true
				break
			}
		}
		if !found {
			return Config{}, fmt.Errorf("%w: device %q not found", errs.ErrDeviceUnavailable, c.deviceName)
		}
	}

	var lastErr error
	for _, cand := range negotiationOrder {
		cfg := malgo.DefaultDeviceConfig(malgo.Capture)
		cfg.Capture.Format = malgo.FormatF32
		cfg.Capture.DeviceID = target.ID.Pointer()
		if cand.channels > 0 {
			cfg.Capture.Channels = uint32(cand.channels)
		}
		if cand.sampleRate > 0 {
			cfg.SampleRate = uint32(cand.sampleRate)
		}

		device, negotiated, err := c.openDevice(cfg, buf)
		if err != nil {
			lastErr = err
			continue
		}

		c.device = device
		logger.WithFields(map[string]interface{}{
			"device":      target.Name(),
			"sample_rate": negotiated.SampleRate,
			"channels":    negotiated.Channels,
		}).Info("audio capture started")
		return negotiated, nil
	}

	return Config{}, fmt.Errorf("%w: %v", errs.ErrUnsupportedFormat, lastErr)
}

func (c *MalgoCapture) openDevice(cfg malgo.DeviceConfig, buf *Buffer) (*malgo.Device, Config, error) {
	callbacks := malgo.DeviceCallbacks{
		Data: func(_, samples []byte, frameCount uint32) {
			floats := BytesToFloat32(samples)
			if len(floats) == 0 {
				return
			}
			buf.Append(floats)
		},
	}

	device, err := malgo.InitDevice(c.ctx.Context, cfg, callbacks)
	if err != nil {
		return nil, Config{}, err
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		return nil, Config{}, err
	}

	channels := int(device.CaptureChannels())
	if channels == 0 {
		channels = 1
	}
	rate := int(device.SampleRate())
	if rate == 0 {
		rate = 48000
	}
	return device, Config{SampleFormat: "f32", SampleRate: rate, Channels: channels}, nil
}

// Stop halts the device callback and releases miniaudio resources.
func (c *MalgoCapture) Stop() error {
	if c.device != nil {
		if c.device.IsStarted() {
			_ = c.device.Stop()
		}
		c.device.Uninit()
		c.device = nil
	}
	return nil
}

// Close releases the miniaudio context. Call once the capturer is no
// longer needed for any session.
func (c *MalgoCapture) Close() {
	if c.ctx != nil {
		_ = c.ctx.Uninit()
		c.ctx.Free()
	}
}
