package reading

import (
	"fmt"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/deck"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/guardrails"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/knowledge"
)

type ReadingRequest struct {
	Question string `json:"question"`
	NumCards int    `json:"num_cards,omitempty"`
	CallerID string `json:"caller_id,omitempty"`
}

func (r *ReadingRequest) SetDefaults() {
	if r.NumCards == 0 {
		r.NumCards = DefaultNumCards
	}
	if r.CallerID == "" {
		r.CallerID = "anonymous"
	}
}

func (r *ReadingRequest) Validate() error {
	if r.NumCards < 1 || r.NumCards > deck.Size {
		return fmt.Errorf("num_cards must be between 1 and %d", deck.Size)
	}
	return nil
}

type CardView struct {
	Name        string `json:"name"`
	Orientation string `json:"orientation"`
	Reversed    bool   `json:"reversed"`
	ImagePath   string `json:"image_path"`
}

type ReadingMetrics struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	EstimatedUsage   bool    `json:"estimated_usage"`
	CostUSD          float64 `json:"cost_usd"`
	DurationSeconds  float64 `json:"duration_seconds"`
}

type ReadingResponse struct {
	Question string              `json:"question"`
	Cards    []CardView          `json:"cards"`
	Reading  string              `json:"reading"`
	Warning  *guardrails.Warning `json:"warning,omitempty"`
	Metrics  ReadingMetrics      `json:"metrics"`
	TraceID  string              `json:"trace_id,omitempty"`
}

type CardInfoResponse struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	Suit            string `json:"suit,omitempty"`
	Content         string `json:"content"`
	UprightMeaning  string `json:"upright_meaning,omitempty"`
	ReversedMeaning string `json:"reversed_meaning,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func NewReadingResponse(session *Session) ReadingResponse {
	cards := make([]CardView, 0, len(session.Cards))
	for _, c := range session.Cards {
		cards = append(cards, CardView{
			Name:        c.Card.Name,
			Orientation: string(c.Orientation),
			Reversed:    c.Orientation == deck.Reversed,
			ImagePath:   c.ImageRef,
		})
	}

	response := ReadingResponse{
		Question: session.Question,
		Cards:    cards,
		Reading:  session.GeneratedText,
		Warning:  session.Warning,
		TraceID:  session.TraceID,
	}
	if session.Metrics != nil {
		response.Metrics = ReadingMetrics{
			PromptTokens:     session.Metrics.PromptTokens,
			CompletionTokens: session.Metrics.CompletionTokens,
			TotalTokens:      session.Metrics.TotalTokens,
			EstimatedUsage:   session.Metrics.EstimatedUsage,
			CostUSD:          session.Metrics.CostUSD,
			DurationSeconds:  session.Metrics.Latency.Seconds(),
		}
	}
	return response
}

func NewCardInfoResponse(entry *knowledge.Entry) CardInfoResponse {
	return CardInfoResponse{
		Name:            entry.Metadata.Name,
		Type:            entry.Metadata.Type,
		Suit:            entry.Metadata.Suit,
		Content:         entry.Content,
		UprightMeaning:  entry.UprightMeaning,
		ReversedMeaning: entry.ReversedMeaning,
	}
}
