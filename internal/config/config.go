package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the agent configuration. A missing file is not an error; the
// defaults are enough to run.
func Load() (*Config, error) {
	path := os.Getenv("AGENT_CONFIG_PATH")
	if path == "" {
		path = "configs/agent.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Guardrails.MaxQuestionLength == 0 {
		cfg.Guardrails.MaxQuestionLength = 500
	}
	if cfg.Guardrails.MaxResponseLength == 0 {
		cfg.Guardrails.MaxResponseLength = 5000
	}
	if cfg.Guardrails.MinResponseLength == 0 {
		cfg.Guardrails.MinResponseLength = 50
	}
	if cfg.Guardrails.RateLimit == 0 {
		cfg.Guardrails.RateLimit = 10
	}
	if cfg.Pricing.Default == (ModelPrice{}) {
		cfg.Pricing.Default = ModelPrice{PromptPer1K: 0.003, CompletionPer1K: 0.015}
	}
	if cfg.Pricing.Models == nil {
		cfg.Pricing.Models = map[string]ModelPrice{
			"anthropic.claude-3-haiku-20240307-v1:0":    {PromptPer1K: 0.00025, CompletionPer1K: 0.00125},
			"anthropic.claude-3-5-sonnet-20240620-v1:0": {PromptPer1K: 0.003, CompletionPer1K: 0.015},
		}
	}
}
