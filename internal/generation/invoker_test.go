package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/config"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/llm"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

type mockLLMClient struct {
	response   *llm.LLMResponse
	err        error
	lastPrompt string
}

func (m *mockLLMClient) InvokeModel(_ context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	m.lastPrompt = request.Prompt
	return m.response, m.err
}

func (m *mockLLMClient) InvokeModelWithRetry(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	return m.InvokeModel(ctx, request)
}

func testPricing() config.PricingTable {
	return config.PricingTable{
		Default: config.ModelPrice{PromptPer1K: 0.003, CompletionPer1K: 0.015},
		Models: map[string]config.ModelPrice{
			"test-model": {PromptPer1K: 0.001, CompletionPer1K: 0.002},
		},
	}
}

func TestGenerate_ReportedUsage(t *testing.T) {
	client := &mockLLMClient{
		response: &llm.LLMResponse{
			Content:    "A reading about The Fool.",
			StopReason: "end_turn",
			Usage:      &llm.TokenUsage{PromptTokens: 1000, CompletionTokens: 500},
		},
	}
	inv := NewInvoker(client, "test-model", testPricing(), newTestLogger())

	result, err := inv.Generate(context.Background(), "prompt", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.EstimatedUsage {
		t.Error("expected reported usage, not estimated")
	}
	if result.TotalTokens != 1500 {
		t.Errorf("expected 1500 total tokens, got %d", result.TotalTokens)
	}
	// 1000/1000*0.001 + 500/1000*0.002 = 0.002
	if got := result.CostUSD; got < 0.0019 || got > 0.0021 {
		t.Errorf("expected cost around 0.002, got %f", got)
	}
}

func TestGenerate_EstimatedUsage(t *testing.T) {
	client := &mockLLMClient{
		response: &llm.LLMResponse{Content: "one two three four five", StopReason: "end_turn"},
	}
	inv := NewInvoker(client, "test-model", testPricing(), newTestLogger())

	result, err := inv.Generate(context.Background(), "two words", "three context words here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.EstimatedUsage {
		t.Error("expected estimated usage")
	}
	// 2 words + 4 words prompt side: int(2*1.3) + int(4*1.3) = 2 + 5 = 7
	if result.PromptTokens != 7 {
		t.Errorf("expected 7 estimated prompt tokens, got %d", result.PromptTokens)
	}
	// 5 words: int(5*1.3) = 6
	if result.CompletionTokens != 6 {
		t.Errorf("expected 6 estimated completion tokens, got %d", result.CompletionTokens)
	}
}

func TestGenerate_UnknownModelUsesDefaultPrice(t *testing.T) {
	client := &mockLLMClient{
		response: &llm.LLMResponse{
			Content: "text",
			Usage:   &llm.TokenUsage{PromptTokens: 1000, CompletionTokens: 1000},
		},
	}
	inv := NewInvoker(client, "unlisted-model", testPricing(), newTestLogger())

	result, err := inv.Generate(context.Background(), "prompt", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 0.003 + 0.015 = 0.018 from the default price
	if got := result.CostUSD; got < 0.0179 || got > 0.0181 {
		t.Errorf("expected default-priced cost around 0.018, got %f", got)
	}
}

func TestGenerate_ContextPrependedToPrompt(t *testing.T) {
	client := &mockLLMClient{
		response: &llm.LLMResponse{Content: "ok response text"},
	}
	inv := NewInvoker(client, "test-model", testPricing(), newTestLogger())

	if _, err := inv.Generate(context.Background(), "the question", "card knowledge"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "card knowledge\n\nthe question"
	if client.lastPrompt != want {
		t.Errorf("expected prompt %q, got %q", want, client.lastPrompt)
	}
}

func TestGenerate_ErrorPassthrough(t *testing.T) {
	providerErr := errors.New("ThrottlingException: rate exceeded")
	client := &mockLLMClient{err: providerErr}
	inv := NewInvoker(client, "test-model", testPricing(), newTestLogger())

	_, err := inv.Generate(context.Background(), "prompt", "")
	if !errors.Is(err, providerErr) {
		t.Errorf("expected provider error passed through, got %v", err)
	}
}

func TestGenerate_EmptyResponse(t *testing.T) {
	client := &mockLLMClient{response: &llm.LLMResponse{Content: ""}}
	inv := NewInvoker(client, "test-model", testPricing(), newTestLogger())

	_, err := inv.Generate(context.Background(), "prompt", "")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}
