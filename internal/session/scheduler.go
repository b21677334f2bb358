package session

import (
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/beingmomen/dictation-core/internal/audio"
	"github.com/beingmomen/dictation-core/internal/hallucination"
	"github.com/beingmomen/dictation-core/internal/logger"
	"github.com/beingmomen/dictation-core/internal/vad"
	"github.com/beingmomen/dictation-core/internal/whisper"
)

const (
	// ChunkSamples is 3 s of 16 kHz mono audio.
	ChunkSamples = 48000
	// OverlapSamples is 0.5 s of 16 kHz mono audio, re-examined on the
	// next chunk so word-boundary cuts are not lost.
	OverlapSamples = 8000
	// PollInterval is how often the scheduler wakes to check the
	// capture buffer for new data.
	PollInterval = 500 * time.Millisecond
	// autoStopGrace is the minimum session age before auto-stop may
	// fire, so a session that opens on silence doesn't immediately
	// trigger it.
	autoStopGrace = 5 * time.Second
	// asrSampleRate is the rate every chunk is resampled to before it
	// reaches the transcriber.
	asrSampleRate = 16000
	// StreamingSilenceRMS is the absolute whole-chunk RMS floor below
	// which a chunk skips the VAD/ASR call entirely, distinct from the
	// VAD's own adaptive threshold: a pre-VAD fast path for chunks that
	// are silence by any reasonable measure.
	StreamingSilenceRMS = 0.001
)

// AutoStopConfig configures sustained-silence auto-termination.
type AutoStopConfig struct {
	Enabled bool
	Seconds float64
}

// Scheduler is the StreamingScheduler control loop: it polls a
// capture buffer, slices overlapping chunks, gates them through VAD,
// transcribes and filters, and emits progress events.
type Scheduler struct {
	buf          *audio.Buffer
	detector     vad.Detector
	transcriber  whisper.Transcriber
	filter       *hallucination.Filter
	suppressor   audio.NoiseSuppressor
	preprocessor *audio.Preprocessor
	transcript   *Transcript
	emit         func(Event)
	sessionID    string
	autoStop     AutoStopConfig

	active           atomic.Bool
	lastProcessedPos int
	lastVADPos       int
	chunkIndex       int
	startedAt        time.Time

	wg sync.WaitGroup
}

// NewScheduler wires a scheduler's collaborators. emit is called for
// every outbound event; it must not block the scheduler for long.
func NewScheduler(
	buf *audio.Buffer,
	detector vad.Detector,
	transcriber whisper.Transcriber,
	filter *hallucination.Filter,
	suppressor audio.NoiseSuppressor,
	transcript *Transcript,
	sessionID string,
	autoStop AutoStopConfig,
	emit func(Event),
) *Scheduler {
	if suppressor == nil {
		suppressor = audio.NewNoopSuppressor()
	}
	return &Scheduler{
		buf:          buf,
		detector:     detector,
		transcriber:  transcriber,
		filter:       filter,
		suppressor:   suppressor,
		preprocessor: audio.NewPreprocessor(),
		transcript:   transcript,
		emit:         emit,
		sessionID:    sessionID,
		autoStop:     autoStop,
	}
}

// Start launches the poll loop on a dedicated goroutine. Stop must be
// called to end it.
func (s *Scheduler) Start() {
	s.active.Store(true)
	s.startedAt = time.Now()
	s.lastProcessedPos = 0
	s.lastVADPos = 0
	s.chunkIndex = 0

	s.wg.Add(1)
	go s.run()
}

// Stop signals the loop to end. It does not block; callers that need
// to know the worker has exited should use Wait.
func (s *Scheduler) Stop() {
	s.active.Store(false)
}

// Wait blocks until the poll loop goroutine has returned or the
// timeout elapses, whichever comes first. It reports whether the
// worker actually finished within the timeout.
func (s *Scheduler) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for s.active.Load() {
		<-ticker.C
		if !s.active.Load() {
			return
		}
		if s.iterate() {
			return
		}
	}
}

// iterate runs one poll cycle and reports whether the loop should
// stop (auto-stop fired).
func (s *Scheduler) iterate() bool {
	writeCursor := s.buf.Len()
	s.emitEvent(KindAudioLevel, AudioLevelData{Level: s.buf.Level()})

	newSamples := writeCursor - s.lastProcessedPos
	if newSamples < ChunkSamples {
		if newSamples > 0 {
			tail := s.buf.Range(s.lastVADPos, writeCursor)
			s.detector.Feed(tail)
			s.lastVADPos = writeCursor
		}
		return s.evaluateAutoStop()
	}

	chunkStart := s.lastProcessedPos - OverlapSamples
	if chunkStart < 0 {
		chunkStart = 0
	}
	chunkEnd := writeCursor
	chunk := s.buf.Range(chunkStart, chunkEnd)

	if rmsOf(chunk) < StreamingSilenceRMS {
		s.lastProcessedPos = writeCursor
		s.lastVADPos = writeCursor
		return s.evaluateAutoStop()
	}

	s.chunkIndex++
	idx := s.chunkIndex

	isSpeech := s.detector.Feed(chunk)
	s.lastVADPos = writeCursor
	if !isSpeech {
		s.lastProcessedPos = writeCursor
		return s.evaluateAutoStop()
	}

	asrReady := s.prepareForASR(chunk)
	text, err := s.transcriber.TranscribeChunk(asrReady)
	if err != nil {
		logger.WithFields(map[string]interface{}{"chunk_index": idx, "error": err}).Warn("chunk transcription failed, skipping")
		s.lastProcessedPos = writeCursor
		return s.evaluateAutoStop()
	}

	s.lastProcessedPos = writeCursor

	trimmed := strings.TrimSpace(text.Text)
	if trimmed != "" && !s.filter.IsHallucination(trimmed, text.Duration) {
		s.transcript.Append(idx, trimmed)
		s.emitEvent(KindPartialText, PartialTextData{ChunkIndex: idx, Text: trimmed, IsFinal: false})
	} else if trimmed != "" {
		logger.WithField("chunk_index", idx).Debug("filtered chunk hallucination")
	}

	return s.evaluateAutoStop()
}

// prepareForASR resamples a chunk to 16 kHz mono (a no-op when the
// capture device already delivers 16 kHz mono), runs the noise
// suppressor (a no-op unless noise suppression is enabled), then the
// preprocessor chain.
func (s *Scheduler) prepareForASR(chunk []float32) []float32 {
	mono := audio.Downmix(chunk, s.buf.Channels())
	resampled := audio.Resample(mono, s.buf.Rate(), asrSampleRate)
	denoised := s.suppressor.Process(resampled)
	return s.preprocessor.Process(denoised)
}

// rmsOf computes the whole-slice RMS used by the pre-VAD silence
// fast path.
func rmsOf(samples []float32) float32 {
	if len(samples) == 0 {
		return 0
	}
	var sumSq float64
	for _, s := range samples {
		sumSq += float64(s) * float64(s)
	}
	return float32(math.Sqrt(sumSq / float64(len(samples))))
}

func (s *Scheduler) evaluateAutoStop() bool {
	if !s.autoStop.Enabled {
		return false
	}
	if time.Since(s.startedAt) < autoStopGrace {
		return false
	}

	silence := s.detector.SilenceDurationSecs()
	remaining := s.autoStop.Seconds - silence
	if remaining < 0 {
		remaining = 0
	}
	s.emitEvent(KindSilenceCountdown, SilenceCountdownData{RemainingSecs: remaining, TotalSecs: s.autoStop.Seconds})

	if silence >= s.autoStop.Seconds {
		s.emitEvent(KindAutoStop, nil)
		s.active.Store(false)
		return true
	}
	return false
}

func (s *Scheduler) emitEvent(kind Kind, data interface{}) {
	if s.emit == nil {
		return
	}
	s.emit(Event{Kind: kind, Timestamp: time.Now().UnixMilli(), SessionID: s.sessionID, Data: data})
}
