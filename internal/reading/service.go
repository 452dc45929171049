package reading

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/deck"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/generation"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/guardrails"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/knowledge"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/stats"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/telemetry"
)

const DefaultNumCards = 3

// guardStage is one named pre-generation check. recordBlock marks stages
// whose rejections the service must count; the input guard counts its own.
type guardStage struct {
	name        string
	recordBlock bool
	check       func(ctx context.Context, question, callerID string) guardrails.GuardrailResult
}

// Service orchestrates one reading: guards, draw, context assembly,
// generation and output validation, with telemetry around the session.
type Service struct {
	inputGuard    *guardrails.InputGuard
	contentPolicy *guardrails.ContentPolicyGuard
	rateLimiter   guardrails.RateLimiter
	outputGuard   *guardrails.OutputGuard
	drawEngine    *deck.DrawEngine
	assembler     *ContextAssembler
	invoker       *generation.Invoker
	store         knowledge.Store
	stats         *stats.Aggregator
	emitter       telemetry.Emitter
	logger        *zerolog.Logger

	stages []guardStage
}

func NewService(
	inputGuard *guardrails.InputGuard,
	contentPolicy *guardrails.ContentPolicyGuard,
	rateLimiter guardrails.RateLimiter,
	outputGuard *guardrails.OutputGuard,
	drawEngine *deck.DrawEngine,
	assembler *ContextAssembler,
	invoker *generation.Invoker,
	store knowledge.Store,
	aggregator *stats.Aggregator,
	emitter telemetry.Emitter,
	logger *zerolog.Logger,
) *Service {
	s := &Service{
		inputGuard:    inputGuard,
		contentPolicy: contentPolicy,
		rateLimiter:   rateLimiter,
		outputGuard:   outputGuard,
		drawEngine:    drawEngine,
		assembler:     assembler,
		invoker:       invoker,
		store:         store,
		stats:         aggregator,
		emitter:       emitter,
		logger:        logger,
	}
	s.stages = []guardStage{
		{
			name: "input_guard",
			check: func(_ context.Context, question, _ string) guardrails.GuardrailResult {
				return s.inputGuard.Validate(question)
			},
		},
		{
			name:        "content_policy",
			recordBlock: true,
			check: func(_ context.Context, question, _ string) guardrails.GuardrailResult {
				return s.contentPolicy.Check(question)
			},
		},
		{
			name:        "rate_limit",
			recordBlock: true,
			check: func(ctx context.Context, _, callerID string) guardrails.GuardrailResult {
				return s.rateLimiter.Allow(ctx, callerID)
			},
		},
	}
	return s
}

// GetReading runs the full pipeline for one question. Context cancellation
// during the knowledge or generation calls is returned as-is, distinct from
// the pipeline's own failure types.
func (s *Service) GetReading(ctx context.Context, question string, numCards int, callerID string) (*Session, error) {
	if numCards < 1 {
		numCards = DefaultNumCards
	}

	session := &Session{
		Question:  question,
		CallerID:  callerID,
		StartedAt: time.Now(),
	}

	for _, stage := range s.stages {
		result := stage.check(ctx, question, callerID)
		if !result.IsSafe {
			if stage.recordBlock {
				s.stats.RecordBlocked(result.Reason)
			}
			s.logger.Warn().
				Str("stage", stage.name).
				Str("reason", result.Reason).
				Str("question", question).
				Msg("question rejected")
			return nil, &ValidationError{Stage: stage.name, Reason: result.Reason}
		}
	}

	drawn, err := s.drawEngine.Draw(numCards)
	if err != nil {
		return nil, &ValidationError{Stage: "draw", Reason: err.Error()}
	}
	session.Cards = drawn

	session.TraceID = s.emitter.SessionStart(telemetry.SessionStartEvent{
		Question:  question,
		CardNames: session.CardNames(),
	})

	contextText, finalCards, err := s.assembler.Assemble(ctx, drawn, question)
	if err != nil {
		if ctxErr := cancellation(err); ctxErr != nil {
			return nil, ctxErr
		}
		s.fail(session, "context_assembly", err)
		return nil, err
	}
	session.Cards = finalCards
	session.Context = contextText

	prompt := buildPrompt(question, finalCards)

	result, err := s.invoker.Generate(ctx, prompt, contextText)
	if err != nil {
		if ctxErr := cancellation(err); ctxErr != nil {
			return nil, ctxErr
		}
		genErr := &GenerationError{Err: err}
		s.fail(session, "generation", genErr)
		return nil, genErr
	}
	session.GeneratedText = result.Text
	session.Metrics = result

	verdict, warning := s.outputGuard.Validate(result.Text, finalCards)
	if !verdict.IsSafe {
		genErr := &GenerationError{Err: fmt.Errorf("response rejected: %s", verdict.Reason)}
		s.fail(session, "output_guard", genErr)
		return nil, genErr
	}
	session.Warning = warning

	duration := time.Since(session.StartedAt)
	s.stats.RecordLatency(duration.Seconds())
	s.emitter.SessionEnd(session.TraceID, telemetry.SessionEndEvent{
		Success:         true,
		DurationSeconds: duration.Seconds(),
		CostUSD:         result.CostUSD,
		TotalTokens:     result.TotalTokens,
	})

	s.logger.Info().
		Str("trace_id", session.TraceID).
		Strs("cards", session.CardNames()).
		Dur("duration", duration).
		Msg("reading completed")

	return session, nil
}

// CardInfo returns the knowledge entry for one card by exact name.
func (s *Service) CardInfo(ctx context.Context, cardName string) (*knowledge.Entry, error) {
	entry, err := s.store.GetCard(ctx, cardName)
	if errors.Is(err, knowledge.ErrNotFound) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("knowledge store lookup failed: %w", err)
	}

	return entry, nil
}

// Stats returns the current aggregator snapshot.
func (s *Service) Stats() stats.Snapshot {
	return s.stats.Snapshot()
}

// ResetStats zeroes the aggregator.
func (s *Service) ResetStats() {
	s.stats.Reset()
}

func (s *Service) fail(session *Session, stage string, err error) {
	s.logger.Error().
		Err(err).
		Str("stage", stage).
		Str("question", session.Question).
		Strs("cards", session.CardNames()).
		Msg("reading failed")

	if session.TraceID != "" {
		s.emitter.Error(session.TraceID, telemetry.ErrorEvent{
			Type:    stage,
			Message: err.Error(),
			Context: session.Question,
		})
		s.emitter.SessionEnd(session.TraceID, telemetry.SessionEndEvent{
			Success:         false,
			DurationSeconds: time.Since(session.StartedAt).Seconds(),
		})
	}
}

func cancellation(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func buildPrompt(question string, cards []deck.DrawnCard) string {
	spread := make([]string, 0, len(cards))
	for _, card := range cards {
		name := card.Card.Name
		if card.Orientation == deck.Reversed {
			name += " (перевернута)"
		}
		spread = append(spread, name)
	}

	return fmt.Sprintf(`Ти - досвідчений таролог, який допомагає людям зрозуміти значення карт Таро.
Відповідай українською мовою, впевнено та професійно.

Питання: %s

Розклад карт:
%s

Надайте детальну інтерпретацію цього розкладу в контексті питання користувача.
Поясніть значення кожної карти окремо, а потім як вони взаємодіють між собою.`,
		question, strings.Join(spread, ", "))
}
