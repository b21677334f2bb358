package audio

// MockCapture implements Capture for tests: Start feeds a fixed
// sample slice into the buffer immediately rather than streaming from
// a real device.
type MockCapture struct {
	devices    []DeviceInfo
	samples    []float32
	config     Config
	startError error
	stopError  error
	device     string
	started    bool
}

// NewMockCapture creates a mock capture that appends samples to the
// buffer once Start is called.
func NewMockCapture(samples []float32, config Config) *MockCapture {
	return &MockCapture{
		devices: []DeviceInfo{{Name: "mock", IsDefault: true}},
		samples: samples,
		config:  config,
	}
}

// SetStartError sets an error to return on Start calls.
func (m *MockCapture) SetStartError(err error) { m.startError = err }

// SetStopError sets an error to return on Stop calls.
func (m *MockCapture) SetStopError(err error) { m.stopError = err }

// SetSamples replaces the samples fed into the buffer on Start.
func (m *MockCapture) SetSamples(samples []float32) { m.samples = samples }

func (m *MockCapture) ListDevices() ([]DeviceInfo, error) { return m.devices, nil }

func (m *MockCapture) SetDevice(name string) { m.device = name }

func (m *MockCapture) Start(buf *Buffer) (Config, error) {
	if m.startError != nil {
		return Config{}, m.startError
	}
	m.started = true
	buf.Append(m.samples)
	return m.config, nil
}

func (m *MockCapture) Stop() error {
	m.started = false
	return m.stopError
}

// IsStarted reports whether Start has been called without a matching Stop.
func (m *MockCapture) IsStarted() bool { return m.started }
