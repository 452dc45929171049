package guardrails

// GuardrailResult is the verdict carried between all pipeline checks.
// Immutable once created; Confidence is 1.0 when a check has no graded
// signal of its own.
type GuardrailResult struct {
	IsSafe     bool           `json:"is_safe"`
	Reason     string         `json:"reason,omitempty"`
	Confidence float64        `json:"confidence"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func Safe() GuardrailResult {
	return GuardrailResult{IsSafe: true, Confidence: 1.0}
}

func SafeWithMetadata(metadata map[string]any) GuardrailResult {
	return GuardrailResult{IsSafe: true, Confidence: 1.0, Metadata: metadata}
}

func Unsafe(reason string) GuardrailResult {
	return GuardrailResult{IsSafe: false, Reason: reason, Confidence: 1.0}
}
