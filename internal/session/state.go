package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/beingmomen/dictation-core/internal/audio"
	"github.com/beingmomen/dictation-core/internal/errs"
	"github.com/beingmomen/dictation-core/internal/hallucination"
	"github.com/beingmomen/dictation-core/internal/logger"
	"github.com/beingmomen/dictation-core/internal/vad"
	"github.com/beingmomen/dictation-core/internal/whisper"
)

// schedulerJoinTimeout bounds how long Stop waits for the scheduler
// worker before proceeding regardless.
const schedulerJoinTimeout = 5 * time.Second

// minSpeechRatioForFinalize is the threshold below which an empty
// accumulated transcript short-circuits to an empty result instead of
// running a full-buffer finalize pass.
const minSpeechRatioForFinalize = 0.1

// DictationSession is the top-level state machine: Idle, Recording,
// Processing, and back to Idle. It owns the capture buffer, the VAD,
// the transcriber, and the accumulated transcript, and is the only
// thing the control layer drives.
type DictationSession struct {
	mu sync.Mutex

	id          string
	capture     audio.Capture
	detector    vad.Detector
	transcriber whisper.Transcriber
	filter      *hallucination.Filter
	suppressor  audio.NoiseSuppressor
	buf         *audio.Buffer
	transcript  *Transcript
	autoStop    AutoStopConfig
	emit        func(Event)

	isRecording  bool
	isProcessing bool
	scheduler    *Scheduler
}

// New creates a session over its collaborators. emit receives every
// outbound Event; pass a no-op func if the caller only wants the
// return value of Stop. suppressor may be nil, in which case noise
// suppression is disabled (audio.NewNoopSuppressor is used).
func New(
	capture audio.Capture,
	detector vad.Detector,
	transcriber whisper.Transcriber,
	suppressor audio.NoiseSuppressor,
	autoStop AutoStopConfig,
	emit func(Event),
) *DictationSession {
	if suppressor == nil {
		suppressor = audio.NewNoopSuppressor()
	}
	return &DictationSession{
		id:          uuid.NewString(),
		capture:     capture,
		detector:    detector,
		transcriber: transcriber,
		filter:      hallucination.New(),
		suppressor:  suppressor,
		transcript:  &Transcript{},
		autoStop:    autoStop,
		emit:        emit,
	}
}

// ID returns the session's identifier, attached to every event it
// emits.
func (s *DictationSession) ID() string {
	return s.id
}

// Start begins a new recording: clears prior state, opens capture,
// and launches the scheduler worker. Fails with ErrAlreadyRecording
// if a recording is already in progress.
func (s *DictationSession) Start(language string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRecording {
		return errs.ErrAlreadyRecording
	}

	s.transcript.Clear()
	s.detector.Reset()
	s.transcriber.SetLanguage(language)

	// Size the buffer for the negotiation order's preferred outcome
	// (f32 mono 16kHz); if the device only negotiates a fallback
	// config, SetFormat reconciles rate/channels afterward.
	s.buf = audio.NewBuffer(asrSampleRate, 1)
	cfg, err := s.capture.Start(s.buf)
	if err != nil {
		return err
	}
	s.buf.SetFormat(cfg.SampleRate, cfg.Channels)

	s.isRecording = true
	s.emitEvent(KindStatusChanged, StatusChangedData{IsRecording: true, IsProcessing: false})

	s.scheduler = NewScheduler(s.buf, s.detector, s.transcriber, s.filter, s.suppressor, s.transcript, s.id, s.autoStop, s.emit)
	s.scheduler.Start()
	return nil
}

// Stop ends the recording, runs the finalize pass, and returns to
// Idle. Fails with ErrNotRecording if no recording is in progress.
func (s *DictationSession) Stop() (ResultData, error) {
	s.mu.Lock()
	if !s.isRecording {
		s.mu.Unlock()
		return ResultData{}, errs.ErrNotRecording
	}
	s.isRecording = false
	s.isProcessing = true
	s.mu.Unlock()

	s.emitEvent(KindStatusChanged, StatusChangedData{IsRecording: false, IsProcessing: true})

	s.scheduler.Stop()
	if !s.scheduler.Wait(schedulerJoinTimeout) {
		logger.WithField("session_id", s.id).Warn("scheduler worker did not join within timeout, proceeding anyway")
	}

	if err := s.capture.Stop(); err != nil {
		logger.WithError(err).Warn("capture stop reported an error")
	}

	result := s.finalize()

	s.mu.Lock()
	s.isProcessing = false
	s.mu.Unlock()
	s.emitEvent(KindStatusChanged, StatusChangedData{IsRecording: false, IsProcessing: false})

	return result, nil
}

// finalize computes the canonical transcript: a full-buffer finalize
// pass is authoritative, with the accumulated streamed text only
// serving earlier live-UI events. Speech-less sessions short-circuit
// without invoking the ASR at all.
func (s *DictationSession) finalize() ResultData {
	samples := s.buf.Snapshot()
	durationSecs := float64(len(samples)) / float64(s.buf.Rate())
	language := s.transcriber.Language()

	if len(samples) == 0 {
		return ResultData{Text: "", DurationS: 0, Language: language}
	}

	speechRatio := s.detector.SpeechRatio()
	if speechRatio < minSpeechRatioForFinalize && s.transcript.Empty() {
		s.emitEvent(KindResult, ResultData{Text: "", DurationS: durationSecs, Language: language})
		return ResultData{Text: "", DurationS: durationSecs, Language: language}
	}

	mono := audio.Downmix(samples, s.buf.Channels())
	resampled := audio.Resample(mono, s.buf.Rate(), asrSampleRate)
	denoised := s.suppressor.Process(resampled)

	result, err := s.transcriber.TranscribeFinal(denoised)
	finalText := result.Text
	if err != nil {
		logger.WithError(err).Warn("finalize transcription failed, falling back to accumulated transcript")
		finalText = s.transcript.Join()
	}
	finalText = s.filter.CleanTrailing(finalText)

	if s.filter.IsHallucination(finalText, durationSecs) {
		finalText = ""
	}

	out := ResultData{Text: finalText, DurationS: durationSecs, Language: language}
	s.emitEvent(KindPartialText, PartialTextData{Text: finalText, IsFinal: true})
	s.emitEvent(KindResult, out)
	return out
}

// IsRecording reports whether a recording is currently in progress.
func (s *DictationSession) IsRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRecording
}

// IsProcessing reports whether the finalize pass is currently running.
func (s *DictationSession) IsProcessing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isProcessing
}

func (s *DictationSession) emitEvent(kind Kind, data interface{}) {
	if s.emit == nil {
		return
	}
	s.emit(Event{Kind: kind, Timestamp: time.Now().UnixMilli(), SessionID: s.id, Data: data})
}
