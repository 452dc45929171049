package llm

type LLMRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// TokenUsage is the token accounting reported by the provider. Nil on a
// response means the provider did not report usage and the caller should
// estimate.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
}

func (u TokenUsage) Total() int {
	return u.PromptTokens + u.CompletionTokens
}

type LLMResponse struct {
	Content    string
	StopReason string
	Usage      *TokenUsage
}
