package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/config"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/llm"
)

// tokenEstimateFactor approximates tokens per word for mixed
// Ukrainian and English text when the provider reports no usage.
const tokenEstimateFactor = 1.3

const (
	defaultMaxTokens   = 2000
	defaultTemperature = 0.7
)

// ErrEmptyResponse is returned when the model answers with no content.
var ErrEmptyResponse = errors.New("model returned empty response")

// Result is one completed generation with its cost accounting.
type Result struct {
	Text             string
	StopReason       string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	EstimatedUsage   bool
	CostUSD          float64
	Latency          time.Duration
}

type Invoker struct {
	client      llm.LLMClient
	modelID     string
	pricing     config.PricingTable
	maxTokens   int
	temperature float64
	logger      *zerolog.Logger
}

func NewInvoker(client llm.LLMClient, modelID string, pricing config.PricingTable, logger *zerolog.Logger) *Invoker {
	return &Invoker{
		client:      client,
		modelID:     modelID,
		pricing:     pricing,
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
		logger:      logger,
	}
}

// Generate invokes the model with the prompt, prefixed by the knowledge
// context when one is present. Provider errors are passed through unchanged
// so the caller can classify them.
func (inv *Invoker) Generate(ctx context.Context, prompt string, contextText string) (*Result, error) {
	fullPrompt := prompt
	if contextText != "" {
		fullPrompt = contextText + "\n\n" + prompt
	}

	start := time.Now()
	response, err := inv.client.InvokeModelWithRetry(ctx, llm.LLMRequest{
		Prompt:      fullPrompt,
		MaxTokens:   inv.maxTokens,
		Temperature: inv.temperature,
	})
	latency := time.Since(start)
	if err != nil {
		return nil, err
	}

	if response.Content == "" {
		return nil, ErrEmptyResponse
	}

	result := &Result{
		Text:       response.Content,
		StopReason: response.StopReason,
		Latency:    latency,
	}

	if response.Usage != nil {
		result.PromptTokens = response.Usage.PromptTokens
		result.CompletionTokens = response.Usage.CompletionTokens
	} else {
		result.PromptTokens = estimateTokens(prompt) + estimateTokens(contextText)
		result.CompletionTokens = estimateTokens(response.Content)
		result.EstimatedUsage = true
	}
	result.TotalTokens = result.PromptTokens + result.CompletionTokens

	price := inv.pricing.Price(inv.modelID)
	result.CostUSD = float64(result.PromptTokens)/1000*price.PromptPer1K +
		float64(result.CompletionTokens)/1000*price.CompletionPer1K

	inv.logger.Info().
		Str("model_id", inv.modelID).
		Int("total_tokens", result.TotalTokens).
		Bool("estimated", result.EstimatedUsage).
		Str("cost_usd", fmt.Sprintf("%.6f", result.CostUSD)).
		Dur("latency", latency).
		Msg("generation completed")

	return result, nil
}

func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	return int(float64(words) * tokenEstimateFactor)
}
