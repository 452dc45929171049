package telemetry

// SessionStartEvent opens a reading trace.
type SessionStartEvent struct {
	Question  string   `json:"question"`
	CardNames []string `json:"card_names"`
}

// SessionEndEvent closes a reading trace with its outcome and cost.
type SessionEndEvent struct {
	Success         bool    `json:"success"`
	DurationSeconds float64 `json:"duration_seconds"`
	CostUSD         float64 `json:"cost_usd"`
	TotalTokens     int     `json:"total_tokens"`
}

// ErrorEvent records a failure inside a trace.
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// Emitter publishes reading session events. Implementations must never fail
// the reading pipeline: event delivery is fire-and-forget.
type Emitter interface {
	SessionStart(event SessionStartEvent) (traceID string)
	SessionEnd(traceID string, event SessionEndEvent)
	Error(traceID string, event ErrorEvent)
}
