package whisper

import "github.com/beingmomen/dictation-core/internal/errs"

// MockTranscriber implements Transcriber for testing the scheduler and
// session without a real model loaded.
type MockTranscriber struct {
	isLoaded       bool
	loadError      error
	chunkResult    TranscriptionResult
	chunkError     error
	finalResult    TranscriptionResult
	finalError     error
	closeError     error
	language       string
	chunkCallCount int
	finalCallCount int
}

// NewMockTranscriber creates a mock Transcriber.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{language: "ar"}
}

// SetLoadError sets an error to return on LoadModel.
func (m *MockTranscriber) SetLoadError(err error) {
	m.loadError = err
}

// SetChunkResult sets the result returned by TranscribeChunk.
func (m *MockTranscriber) SetChunkResult(result TranscriptionResult) {
	m.chunkResult = result
}

// SetChunkError sets an error to return on TranscribeChunk.
func (m *MockTranscriber) SetChunkError(err error) {
	m.chunkError = err
}

// SetFinalResult sets the result returned by TranscribeFinal.
func (m *MockTranscriber) SetFinalResult(result TranscriptionResult) {
	m.finalResult = result
}

// SetFinalError sets an error to return on TranscribeFinal.
func (m *MockTranscriber) SetFinalError(err error) {
	m.finalError = err
}

// SetCloseError sets an error to return on Close.
func (m *MockTranscriber) SetCloseError(err error) {
	m.closeError = err
}

// LoadModel simulates loading a model.
func (m *MockTranscriber) LoadModel(modelPath string, useGPU bool) error {
	if m.loadError != nil {
		return m.loadError
	}
	m.isLoaded = true
	return nil
}

// TranscribeChunk returns the configured chunk result.
func (m *MockTranscriber) TranscribeChunk(samples16k []float32) (TranscriptionResult, error) {
	m.chunkCallCount++
	if !m.isLoaded {
		return TranscriptionResult{}, errs.ErrModelNotLoaded
	}
	if m.chunkError != nil {
		return TranscriptionResult{}, m.chunkError
	}
	return m.chunkResult, nil
}

// TranscribeFinal returns the configured final result.
func (m *MockTranscriber) TranscribeFinal(samples16k []float32) (TranscriptionResult, error) {
	m.finalCallCount++
	if !m.isLoaded {
		return TranscriptionResult{}, errs.ErrModelNotLoaded
	}
	if m.finalError != nil {
		return TranscriptionResult{}, m.finalError
	}
	return m.finalResult, nil
}

// SetLanguage sets the transcription language.
func (m *MockTranscriber) SetLanguage(language string) {
	m.language = language
}

// Language returns the current language.
func (m *MockTranscriber) Language() string {
	return m.language
}

// Close simulates closing the service.
func (m *MockTranscriber) Close() error {
	if m.closeError != nil {
		return m.closeError
	}
	m.isLoaded = false
	return nil
}

// IsLoaded reports whether LoadModel succeeded (for assertions).
func (m *MockTranscriber) IsLoaded() bool {
	return m.isLoaded
}

// ChunkCallCount reports how many times TranscribeChunk was called.
func (m *MockTranscriber) ChunkCallCount() int {
	return m.chunkCallCount
}

// FinalCallCount reports how many times TranscribeFinal was called.
func (m *MockTranscriber) FinalCallCount() int {
	return m.finalCallCount
}
