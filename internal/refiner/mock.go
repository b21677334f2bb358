package refiner

import "context"

// MockRefiner implements Refiner for testing the session's optional
// post-processing step without a real HTTP endpoint.
type MockRefiner struct {
	result    string
	err       error
	callCount int
}

// NewMockRefiner creates a mock refiner that echoes input unchanged
// until configured otherwise.
func NewMockRefiner() *MockRefiner {
	return &MockRefiner{}
}

// SetResult sets the text returned by Refine on success.
func (m *MockRefiner) SetResult(result string) { m.result = result }

// SetError sets an error to return on Refine, simulating an endpoint
// failure.
func (m *MockRefiner) SetError(err error) { m.err = err }

// CallCount reports how many times Refine was called.
func (m *MockRefiner) CallCount() int { return m.callCount }

func (m *MockRefiner) Refine(ctx context.Context, text, language string) (string, error) {
	m.callCount++
	if m.err != nil {
		return text, m.err
	}
	if m.result != "" {
		return m.result, nil
	}
	return text, nil
}
