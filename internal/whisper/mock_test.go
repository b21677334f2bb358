package whisper

import "testing"

func TestNewMockTranscriber(t *testing.T) {
	mock := NewMockTranscriber()
	if mock == nil {
		t.Fatal("expected mock transcriber to be created")
	}
	if mock.IsLoaded() {
		t.Error("expected transcriber to start unloaded")
	}
}

func TestMockTranscriber_LoadModel(t *testing.T) {
	mock := NewMockTranscriber()

	if err := mock.LoadModel("test-model.bin", false); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
	if !mock.IsLoaded() {
		t.Error("expected model to be loaded")
	}
}

func TestMockTranscriber_TranscribeChunkRequiresLoad(t *testing.T) {
	mock := NewMockTranscriber()

	if _, err := mock.TranscribeChunk([]float32{0.1, 0.2}); err == nil {
		t.Error("expected error when model not loaded")
	}
}

func TestMockTranscriber_TranscribeChunk(t *testing.T) {
	mock := NewMockTranscriber()
	mock.LoadModel("test-model.bin", false)

	want := TranscriptionResult{Text: "مرحبا", Language: "ar", Duration: 3.0}
	mock.SetChunkResult(want)

	got, err := mock.TranscribeChunk([]float32{0.1, 0.2})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got.Text != want.Text {
		t.Errorf("Text = %q, want %q", got.Text, want.Text)
	}
	if mock.ChunkCallCount() != 1 {
		t.Errorf("ChunkCallCount() = %d, want 1", mock.ChunkCallCount())
	}
}

func TestMockTranscriber_TranscribeFinal(t *testing.T) {
	mock := NewMockTranscriber()
	mock.LoadModel("test-model.bin", false)

	want := TranscriptionResult{Text: "full transcript", Language: "en", Duration: 12.0}
	mock.SetFinalResult(want)

	got, err := mock.TranscribeFinal([]float32{0.1, 0.2, 0.3})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got.Text != want.Text {
		t.Errorf("Text = %q, want %q", got.Text, want.Text)
	}
	if mock.FinalCallCount() != 1 {
		t.Errorf("FinalCallCount() = %d, want 1", mock.FinalCallCount())
	}
}

func TestMockTranscriber_LanguageRoundTrip(t *testing.T) {
	mock := NewMockTranscriber()
	mock.SetLanguage("en")
	if mock.Language() != "en" {
		t.Errorf("Language() = %q, want %q", mock.Language(), "en")
	}
}

func TestMockTranscriber_Close(t *testing.T) {
	mock := NewMockTranscriber()
	mock.LoadModel("test-model.bin", false)

	if err := mock.Close(); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
	if mock.IsLoaded() {
		t.Error("expected transcriber to be unloaded after Close")
	}
}
