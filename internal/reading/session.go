package reading

import (
	"time"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/deck"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/generation"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/guardrails"
)

// Session accumulates the state of one reading request as it moves through
// the pipeline. Owned exclusively by its request; discarded after the
// response is written.
type Session struct {
	Question      string
	CallerID      string
	Cards         []deck.DrawnCard
	Context       string
	GeneratedText string
	Warning       *guardrails.Warning
	Metrics       *generation.Result
	TraceID       string
	StartedAt     time.Time
}

func (s *Session) CardNames() []string {
	names := make([]string, 0, len(s.Cards))
	for _, c := range s.Cards {
		names = append(names, c.Card.Name)
	}
	return names
}
