package whisper

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/beingmomen/dictation-core/internal/errs"
	"github.com/beingmomen/dictation-core/internal/logger"
)

// Anti-hallucination parameters shared by both invocation modes, per
// the external ASR interface contract: a suppressed no-speech/entropy/
// logprob envelope plus temperature fallback disabled.
const (
	noSpeechThreshold = 0.6
	entropyThreshold  = 2.4
	logProbThreshold  = -1.0
	temperature       = 0.0
	temperatureInc    = 0.0
)

// Service implements Transcriber over a single loaded whisper.cpp
// model shared across chunk-mode and finalize-mode calls; each call
// gets its own context so chunk and finalize parameter sets never
// bleed into one another, while the decoded model weights are loaded
// only once.
type Service struct {
	mu       sync.Mutex
	model    whisper.Model
	config   ModelConfig
	isLoaded bool
}

// NewService creates an unloaded Whisper service.
func NewService() *Service {
	return &Service{}
}

// LoadModel loads a model from disk and records the thread count to
// use for every subsequent context.
func (s *Service) LoadModel(modelPath string, useGPU bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	model, err := whisper.New(modelPath)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrModelLoadFailed, err)
	}

	s.model = model
	s.config.ModelPath = modelPath
	s.config.Threads = runtime.NumCPU()
	s.config.UseGPU = useGPU
	s.isLoaded = true

	logger.WithField("model", modelPath).Info("whisper model loaded")
	return nil
}

// TranscribeChunk runs chunk mode over a short slice of streaming
// audio: single segment, no prior context, greedy best_of=1.
func (s *Service) TranscribeChunk(samples16k []float32) (TranscriptionResult, error) {
	return s.transcribe(samples16k, chunkModeParams)
}

// TranscribeFinal runs finalize mode over the full captured buffer:
// greedy best_of=3 with temperature fallback disabled.
func (s *Service) TranscribeFinal(samples16k []float32) (TranscriptionResult, error) {
	return s.transcribe(samples16k, finalizeModeParams)
}

type paramMode int

const (
	chunkModeParams paramMode = iota
	finalizeModeParams
)

func (s *Service) transcribe(samples []float32, mode paramMode) (TranscriptionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isLoaded {
		return TranscriptionResult{}, errs.ErrModelNotLoaded
	}

	ctx, err := s.model.NewContext()
	if err != nil {
		return TranscriptionResult{}, fmt.Errorf("%w: %v", errs.ErrTranscriptionFailed, err)
	}

	applyAntiHallucination(ctx, s.config.Language)
	ctx.SetTranslate(false)
	ctx.SetThreads(uint(s.config.Threads))

	switch mode {
	case chunkModeParams:
		ctx.SetSingleSegment(true)
		ctx.SetNoContext(true)
		ctx.SetBestOf(1)
	case finalizeModeParams:
		ctx.SetSingleSegment(false)
		ctx.SetNoContext(false)
		ctx.SetBestOf(3)
	}

	if err := ctx.Process(samples, nil, nil, nil); err != nil {
		return TranscriptionResult{}, fmt.Errorf("%w: %v", errs.ErrTranscriptionFailed, err)
	}

	var text string
	var segments []Segment
	for {
		segment, err := ctx.NextSegment()
		if err != nil {
			break
		}
		text += segment.Text
		segments = append(segments, Segment{
			Text:     segment.Text,
			Start:    float64(segment.Start) / 1000.0,
			End:      float64(segment.End) / 1000.0,
			NoSpeech: segment.Text == "",
		})
	}

	return TranscriptionResult{
		Text:     text,
		Segments: segments,
		Language: s.config.Language,
		Duration: float64(len(samples)) / 16000.0,
	}, nil
}

// applyAntiHallucination sets the parameters common to both chunk and
// finalize modes: greedy decoding (no timestamps), the suppressed
// no-speech/entropy/logprob envelope, disabled temperature fallback,
// and a language-specific priming prompt discouraging canned
// credits/lyrics output.
func applyAntiHallucination(ctx whisper.Context, language string) {
	ctx.SetLanguage(language)
	ctx.SetTokenTimestamps(false)
	ctx.SuppressBlank(true)
	ctx.SuppressNonSpeechTokens(true)
	ctx.SetNoSpeechThreshold(noSpeechThreshold)
	ctx.SetEntropyThreshold(entropyThreshold)
	ctx.SetLogProbThreshold(logProbThreshold)
	ctx.SetTemperature(temperature)
	ctx.SetTemperatureFallback(temperatureInc)
	if prompt := PromptForLanguage(language); prompt != "" {
		ctx.SetInitialPrompt(prompt)
	}
}

// SetLanguage sets the session-level transcription language.
func (s *Service) SetLanguage(language string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Language = language
}

// Language returns the current transcription language.
func (s *Service) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Language
}

// Close releases the loaded model.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isLoaded && s.model != nil {
		s.model.Close()
		s.isLoaded = false
	}
	return nil
}
