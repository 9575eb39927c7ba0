package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/ppiankov/chaff/internal/llm"
	"github.com/ppiankov/chaff/internal/model"
)

// mockProvider is a canned llm.Provider for tests
type mockProvider struct {
	response string
	err      error
	calls    int
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &llm.CompletionResponse{Text: m.response, Model: "mock"}, nil
}

func (m *mockProvider) IsAvailable(_ context.Context) bool { return true }

func TestClassifier_Classify(t *testing.T) {
	provider := &mockProvider{
		response: "VERDICT: LEGITIMATE\nCONFIDENCE: 92\nREASONING: Well documented.",
	}
	classifier := NewClassifier(provider, nil)

	j, err := classifier.Classify(context.Background(), "The Boeing 747 has four engines")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if j.Verdict != model.VerdictLegitimate {
		t.Errorf("Expected LEGITIMATE, got %v", j.Verdict)
	}
	if j.Confidence != 92 {
		t.Errorf("Expected confidence 92, got %d", j.Confidence)
	}
	if provider.calls != 1 {
		t.Errorf("Expected exactly one completion call, got %d", provider.calls)
	}
}

func TestClassifier_Classify_EmptyClaim(t *testing.T) {
	provider := &mockProvider{response: "VERDICT: BS"}
	classifier := NewClassifier(provider, nil)

	_, err := classifier.Classify(context.Background(), "   ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput, got %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("Expected no completion call for empty claim, got %d", provider.calls)
	}
}

func TestClassifier_Classify_GatewayError(t *testing.T) {
	provider := &mockProvider{err: llm.ErrGatewayTimeout}
	classifier := NewClassifier(provider, nil)

	_, err := classifier.Classify(context.Background(), "The Concorde flew at Mach 2")
	if !errors.Is(err, llm.ErrGatewayTimeout) {
		t.Fatalf("Expected gateway timeout to propagate, got %v", err)
	}
}

func TestClassifier_Classify_UnparsableIsNotAnError(t *testing.T) {
	provider := &mockProvider{response: "I am not sure what to say."}
	classifier := NewClassifier(provider, nil)

	j, err := classifier.Classify(context.Background(), "Planes can fly to the moon")
	if err != nil {
		t.Fatalf("Expected no error for unparsable output, got %v", err)
	}
	if !j.IsError() {
		t.Errorf("Expected ERROR verdict sentinel, got %v", j.Verdict)
	}
	if j.Confidence != 0 {
		t.Errorf("Expected confidence 0 on parse failure, got %d", j.Confidence)
	}
}
