package session

// Kind identifies the variant carried by an Event's Data payload.
type Kind string

const (
	KindStatusChanged    Kind = "status_changed"
	KindAudioLevel       Kind = "audio_level"
	KindPartialText      Kind = "partial_text"
	KindSilenceCountdown Kind = "silence_countdown"
	KindAutoStop         Kind = "auto_stop"
	KindResult           Kind = "result"
	KindError            Kind = "error"
	KindRefineFailed     Kind = "refine_failed"
)

// Event is the outbound envelope emitted by the scheduler and the
// session state machine. Data is one of the *Data types below,
// matching Kind.
type Event struct {
	Kind      Kind        `json:"kind"`
	Timestamp int64       `json:"timestamp"`
	SessionID string      `json:"session_id"`
	Data      interface{} `json:"data,omitempty"`
}

// StatusChangedData reports the session's recording/processing flags.
type StatusChangedData struct {
	IsRecording  bool `json:"is_recording"`
	IsProcessing bool `json:"is_processing"`
}

// AudioLevelData carries the capture buffer's current RMS level.
type AudioLevelData struct {
	Level float32 `json:"level"`
}

// PartialTextData is one accepted fragment, or, when IsFinal is true,
// the finalized transcript emitted just before the Result event.
type PartialTextData struct {
	ChunkIndex int    `json:"chunk_index"`
	Text       string `json:"text"`
	IsFinal    bool   `json:"is_final"`
}

// SilenceCountdownData reports progress toward an auto-stop trigger.
type SilenceCountdownData struct {
	RemainingSecs float64 `json:"remaining_secs"`
	TotalSecs     float64 `json:"total_secs"`
}

// ResultData is the canonical transcript produced on Stop.
type ResultData struct {
	Text      string  `json:"text"`
	DurationS float64 `json:"duration_secs"`
	Language  string  `json:"language"`
}

// ErrorData carries a non-fatal error surfaced to the app layer.
type ErrorData struct {
	Message string `json:"message"`
}
