package config

// Config is the agent configuration loaded from configs/agent.yaml.
type Config struct {
	Guardrails GuardrailLimits `yaml:"guardrails"`
	Pricing    PricingTable    `yaml:"pricing"`
}

// GuardrailLimits tunes the input and output validation thresholds.
type GuardrailLimits struct {
	MaxQuestionLength int      `yaml:"max_question_length"`
	MaxResponseLength int      `yaml:"max_response_length"`
	MinResponseLength int      `yaml:"min_response_length"`
	RateLimit         int      `yaml:"rate_limit"`
	ForbiddenTerms    []string `yaml:"forbidden_terms"`
}

// ModelPrice is the per-1K-token price of one model.
type ModelPrice struct {
	PromptPer1K     float64 `yaml:"prompt_per_1k"`
	CompletionPer1K float64 `yaml:"completion_per_1k"`
}

// PricingTable maps model IDs to prices. Unknown models fall back to the
// default price so cost metrics never silently read zero.
type PricingTable struct {
	Default ModelPrice            `yaml:"default"`
	Models  map[string]ModelPrice `yaml:"models"`
}

func (t PricingTable) Price(modelID string) ModelPrice {
	if price, ok := t.Models[modelID]; ok {
		return price
	}
	return t.Default
}
