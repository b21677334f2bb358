package refiner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPRefiner_EmptyTextShortCircuits(t *testing.T) {
	r := NewHTTPRefiner("http://unused.invalid", "test-model")
	got, err := r.Refine(context.Background(), "   ", "en")
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}
	if got != "   " {
		t.Errorf("Refine() = %q, want input unchanged", got)
	}
}

func TestHTTPRefiner_SuccessReturnsCleanedContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var body chatRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body.Model != "test-model" {
			t.Errorf("request model = %q, want %q", body.Model, "test-model")
		}
		resp := chatResponse{Choices: []struct {
			Message chatMessage `json:"message"`
		}{{Message: chatMessage{Role: "assistant", Content: "`fixed text`"}}}}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	r := NewHTTPRefiner(server.URL, "test-model")
	got, err := r.Refine(context.Background(), "fixd txt", "en")
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}
	if got != "fixed text" {
		t.Errorf("Refine() = %q, want %q", got, "fixed text")
	}
}

func TestHTTPRefiner_FailureFallsBackToOriginalText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	r := NewHTTPRefiner(server.URL, "test-model")
	got, err := r.Refine(context.Background(), "original text", "en")
	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if got != "original text" {
		t.Errorf("Refine() = %q, want the original text on failure", got)
	}
}

func TestMockRefiner_DefaultsToEcho(t *testing.T) {
	m := NewMockRefiner()
	got, err := m.Refine(context.Background(), "hello", "en")
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}
	if got != "hello" {
		t.Errorf("Refine() = %q, want %q", got, "hello")
	}
	if m.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", m.CallCount())
	}
}
