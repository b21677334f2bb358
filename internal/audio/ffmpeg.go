package audio

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/beingmomen/dictation-core/internal/errs"
)

// FFmpegCapture implements Capture by shelling out to ffmpeg's pulse
// input, already resampled to 16kHz mono f32le. It is the fallback
// capture path for hosts without native miniaudio device access; it
// always negotiates the narrowest format itself rather than trying
// the candidate list MalgoCapture walks.
type FFmpegCapture struct {
	source string
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stopCh chan struct{}
}

// NewFFmpegCapture creates a new ffmpeg-backed capture, defaulting to
// the pulse "default" source.
func NewFFmpegCapture() *FFmpegCapture {
	return &FFmpegCapture{source: "default"}
}

// SetDevice selects the pulse source name for the next Start call.
func (f *FFmpegCapture) SetDevice(name string) {
	if name == "" {
		name = "default"
	}
	f.source = name
}

// ListDevices is not supported over the ffmpeg/pulse fallback path;
// it reports a single entry named "default", whatever SetDevice chose.
func (f *FFmpegCapture) ListDevices() ([]DeviceInfo, error) {
	return []DeviceInfo{{Name: "default", IsDefault: true}}, nil
}

// Start launches ffmpeg and begins appending decoded f32 samples into
// buf on a background goroutine until Stop is called.
func (f *FFmpegCapture) Start(buf *Buffer) (Config, error) {
	cmd := exec.Command("ffmpeg",
		"-f", "pulse",
		"-i", f.source,
		"-ar", "16000",
		"-ac", "1",
		"-f", "f32le",
		"-loglevel", "quiet",
		"-")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", errs.ErrDeviceUnavailable, err)
	}
	if err := cmd.Start(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errs.ErrDeviceUnavailable, err)
	}

	f.cmd = cmd
	f.stdout = stdout
	f.stopCh = make(chan struct{})

	go f.readLoop(buf, f.stopCh)

	return Config{SampleFormat: "f32", SampleRate: 16000, Channels: 1}, nil
}

func (f *FFmpegCapture) readLoop(buf *Buffer, stop chan struct{}) {
	chunk := make([]byte, 4096)
	for {
		select {
		case <-stop:
			return
		default:
		}
		n, err := f.stdout.Read(chunk)
		if n > 0 {
			buf.Append(BytesToFloat32(chunk[:n-n%4]))
		}
		if err != nil {
			return
		}
	}
}

// Stop terminates the ffmpeg process and stops appending to the buffer.
func (f *FFmpegCapture) Stop() error {
	if f.stopCh != nil {
		close(f.stopCh)
		f.stopCh = nil
	}
	if f.cmd != nil && f.cmd.Process != nil {
		_ = f.cmd.Process.Kill()
	}
	if f.stdout != nil {
		_ = f.stdout.Close()
	}
	return nil
}
