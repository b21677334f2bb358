package session

import (
	"testing"
	"time"

	"github.com/beingmomen/dictation-core/internal/audio"
	"github.com/beingmomen/dictation-core/internal/hallucination"
	"github.com/beingmomen/dictation-core/internal/vad"
	"github.com/beingmomen/dictation-core/internal/whisper"
)

func newTestScheduler(t *testing.T) (*Scheduler, *audio.Buffer, *vad.MockDetector, *whisper.MockTranscriber, *[]Event) {
	t.Helper()
	buf := audio.NewBuffer(16000, 1)
	detector := vad.NewMockDetector()
	transcriber := whisper.NewMockTranscriber()
	transcriber.LoadModel("mock.bin", false)
	transcript := &Transcript{}

	var events []Event
	sched := NewScheduler(buf, detector, transcriber, hallucination.New(), nil, transcript, "test-session", AutoStopConfig{}, func(e Event) {
		events = append(events, e)
	})
	return sched, buf, detector, transcriber, &events
}

// loudSamples returns a slice whose whole-chunk RMS clears
// StreamingSilenceRMS, so tests that need the VAD/transcriber to
// actually run don't get short-circuited by the pre-VAD silence gate.
func loudSamples(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = 0.05
	}
	return out
}

func TestScheduler_CatchUpPathBelowChunkSize(t *testing.T) {
	sched, buf, _, transcriber, _ := newTestScheduler(t)
	buf.Append(make([]float32, ChunkSamples/2))

	if stop := sched.iterate(); stop {
		t.Fatal("expected iterate to not trigger auto-stop")
	}
	if transcriber.ChunkCallCount() != 0 {
		t.Error("expected no transcription call below chunk size")
	}
}

func TestScheduler_SilentChunkSkipsTranscription(t *testing.T) {
	sched, buf, detector, transcriber, _ := newTestScheduler(t)
	detector.SetPattern([]bool{false})
	buf.Append(loudSamples(ChunkSamples))

	sched.iterate()

	if transcriber.ChunkCallCount() != 0 {
		t.Error("expected silent chunk to skip transcription")
	}
	if sched.lastProcessedPos != ChunkSamples {
		t.Errorf("lastProcessedPos = %d, want %d", sched.lastProcessedPos, ChunkSamples)
	}
}

func TestScheduler_SpeechChunkAppendsFragment(t *testing.T) {
	sched, buf, detector, transcriber, events := newTestScheduler(t)
	detector.SetPattern([]bool{true})
	transcriber.SetChunkResult(whisper.TranscriptionResult{Text: "hello there friend", Duration: 3.0})
	buf.Append(loudSamples(ChunkSamples))

	sched.iterate()

	if transcriber.ChunkCallCount() != 1 {
		t.Fatalf("ChunkCallCount() = %d, want 1", transcriber.ChunkCallCount())
	}
	frags := sched.transcript.Fragments()
	if len(frags) != 1 || frags[0].Text != "hello there friend" {
		t.Fatalf("unexpected fragments: %+v", frags)
	}
	if frags[0].ChunkIndex != 1 {
		t.Errorf("ChunkIndex = %d, want 1", frags[0].ChunkIndex)
	}

	found := false
	for _, e := range *events {
		if e.Kind == KindPartialText {
			found = true
		}
	}
	if !found {
		t.Error("expected a PartialText event to be emitted")
	}
}

func TestScheduler_HallucinationIsFiltered(t *testing.T) {
	sched, buf, detector, transcriber, _ := newTestScheduler(t)
	detector.SetPattern([]bool{true})
	transcriber.SetChunkResult(whisper.TranscriptionResult{Text: "ok ok ok ok ok", Duration: 3.0})
	buf.Append(loudSamples(ChunkSamples))

	sched.iterate()

	if !sched.transcript.Empty() {
		t.Error("expected loop-output hallucination to be filtered out")
	}
}

func TestScheduler_TranscriptionErrorAdvancesWithoutPanic(t *testing.T) {
	sched, buf, detector, transcriber, _ := newTestScheduler(t)
	detector.SetPattern([]bool{true})
	transcriber.SetChunkError(errTest)
	buf.Append(loudSamples(ChunkSamples))

	sched.iterate()

	if sched.lastProcessedPos != ChunkSamples {
		t.Errorf("lastProcessedPos = %d, want %d", sched.lastProcessedPos, ChunkSamples)
	}
	if !sched.transcript.Empty() {
		t.Error("expected nothing appended on transcription error")
	}
}

func TestScheduler_SubThresholdRMSSkipsVADAndASR(t *testing.T) {
	sched, buf, detector, transcriber, _ := newTestScheduler(t)
	detector.SetPattern([]bool{true}) // would say "speech" if ever asked
	buf.Append(make([]float32, ChunkSamples))

	sched.iterate()

	if transcriber.ChunkCallCount() != 0 {
		t.Error("expected sub-threshold RMS to skip the ASR call even though VAD would have said speech")
	}
	if sched.chunkIndex != 0 {
		t.Errorf("chunkIndex = %d, want 0 (pre-VAD skip should not consume a chunk attempt)", sched.chunkIndex)
	}
	if sched.lastProcessedPos != ChunkSamples {
		t.Errorf("lastProcessedPos = %d, want %d", sched.lastProcessedPos, ChunkSamples)
	}
}

func TestScheduler_AutoStopFiresAfterSustainedSilence(t *testing.T) {
	buf := audio.NewBuffer(16000, 1)
	detector := vad.NewMockDetector()
	detector.SetSilenceDurationSecs(10)
	transcriber := whisper.NewMockTranscriber()
	transcriber.LoadModel("mock.bin", false)

	var events []Event
	sched := NewScheduler(buf, detector, transcriber, hallucination.New(), nil, &Transcript{}, "s", AutoStopConfig{Enabled: true, Seconds: 5}, func(e Event) {
		events = append(events, e)
	})
	sched.startedAt = time.Now().Add(-time.Hour)

	if stop := sched.iterate(); !stop {
		t.Fatal("expected auto-stop to fire")
	}

	found := false
	for _, e := range events {
		if e.Kind == KindAutoStop {
			found = true
		}
	}
	if !found {
		t.Error("expected an AutoStop event to be emitted")
	}
}

type testErr struct{ msg string }

func (e *testErr) Error() string { return e.msg }

var errTest = &testErr{"boom"}
