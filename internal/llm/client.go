package llm

import (
	"context"
)

// LLMClient abstracts the generation model invocation so the pipeline and
// its tests can substitute a fake instead of calling Bedrock.
type LLMClient interface {
	InvokeModel(ctx context.Context, request LLMRequest) (*LLMResponse, error)
	InvokeModelWithRetry(ctx context.Context, request LLMRequest) (*LLMResponse, error)
}
