package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/beingmomen/dictation-core/internal/audio"
	"github.com/beingmomen/dictation-core/internal/logger"
	"github.com/beingmomen/dictation-core/internal/refiner"
	"github.com/beingmomen/dictation-core/internal/session"
	"github.com/beingmomen/dictation-core/internal/typist"
	"github.com/beingmomen/dictation-core/internal/vad"
	"github.com/beingmomen/dictation-core/internal/whisper"
)

var (
	flagDevice      string
	flagUseFFmpeg   bool
	flagAutoStopSec float64
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Record until interrupted, streaming a live transcript and printing the final result",
	RunE:  runStart,
}

func init() {
	startCmd.Flags().StringVar(&flagDevice, "device", "", "capture device name (default device if empty)")
	startCmd.Flags().BoolVar(&flagUseFFmpeg, "ffmpeg", false, "capture via an ffmpeg subprocess instead of native device I/O")
	startCmd.Flags().Float64Var(&flagAutoStopSec, "auto-stop-seconds", 0, "stop automatically after this many seconds of silence (0 disables)")
}

func runStart(cmd *cobra.Command, args []string) error {
	transcriber := whisper.NewService()
	if err := transcriber.LoadModel(cfg.WhisperModel, cfg.UseGPU); err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	defer transcriber.Close()

	capture, err := newCapture()
	if err != nil {
		return err
	}
	capture.SetDevice(resolveDevice())

	detector := vad.NewAdaptiveDetector(vad.DefaultConfig(16000))

	suppressor, err := newSuppressor()
	if err != nil {
		return fmt.Errorf("init noise suppressor: %w", err)
	}

	autoStop := session.AutoStopConfig{Enabled: cfg.AutoStopEnabled, Seconds: cfg.AutoStopSeconds}
	if flagAutoStopSec > 0 {
		autoStop = session.AutoStopConfig{Enabled: true, Seconds: flagAutoStopSec}
	}

	sess := session.New(capture, detector, transcriber, suppressor, autoStop, printEvent)

	if err := sess.Start(cfg.Language); err != nil {
		return fmt.Errorf("start recording: %w", err)
	}
	logger.Info("recording, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	result, err := sess.Stop()
	if err != nil {
		return fmt.Errorf("stop recording: %w", err)
	}

	finalText := refineResult(sess, result)

	if err := typist.New().TypeText(finalText); err != nil {
		logger.WithError(err).Warn("typist failed to type result")
	}

	fmt.Println(finalText)
	return nil
}

// refineResult runs the configured refiner (if enabled) over the
// finalized transcript. A refiner failure degrades to the unrefined
// text and surfaces as a RefineFailed event rather than a CLI error.
func refineResult(sess *session.DictationSession, result session.ResultData) string {
	if !cfg.RefinerEnabled || result.Text == "" {
		return result.Text
	}

	ref := refiner.NewHTTPRefiner(cfg.RefinerURL, cfg.RefinerModel)
	refined, err := ref.Refine(context.Background(), result.Text, cfg.Language)
	if err != nil {
		logger.WithError(err).Warn("refiner failed, keeping unrefined transcript")
		printEvent(session.Event{
			Kind:      session.KindRefineFailed,
			Timestamp: time.Now().UnixMilli(),
			SessionID: sess.ID(),
			Data:      session.ErrorData{Message: err.Error()},
		})
		return result.Text
	}
	return refined
}

func newCapture() (audio.Capture, error) {
	if flagUseFFmpeg {
		return audio.NewFFmpegCapture(), nil
	}
	return audio.NewMalgoCapture()
}

// newSuppressor builds the noise suppressor selected by config: the
// real denoiser when enabled (a build-tag-gated no-op otherwise), or
// an explicit no-op when noise suppression is turned off.
func newSuppressor() (audio.NoiseSuppressor, error) {
	if !cfg.NoiseSuppressionEnabled {
		return audio.NewNoopSuppressor(), nil
	}
	return audio.NewNoiseSuppressor()
}

// resolveDevice prefers the --device flag, then the configured audio
// source, treating the config's "default" sentinel the same as an
// empty override.
func resolveDevice() string {
	if flagDevice != "" {
		return flagDevice
	}
	if cfg.AudioSource != "" && cfg.AudioSource != "default" {
		return cfg.AudioSource
	}
	return ""
}

func printEvent(e session.Event) {
	switch e.Kind {
	case session.KindPartialText:
		if data, ok := e.Data.(session.PartialTextData); ok && data.Text != "" {
			fmt.Fprintf(os.Stderr, "[partial] %s\n", data.Text)
		}
	case session.KindAutoStop:
		logger.Info("auto-stop triggered on sustained silence")
	case session.KindError:
		if data, ok := e.Data.(session.ErrorData); ok {
			logger.WithField("error", data.Message).Warn("session error")
		}
	case session.KindRefineFailed:
		if data, ok := e.Data.(session.ErrorData); ok {
			logger.WithField("error", data.Message).Warn("refiner failed")
		}
	}
}
