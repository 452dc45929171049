package guardrails

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/deck"
)

const (
	DefaultMaxResponseLength      = 5000
	DefaultMinResponseLength      = 50
	DefaultHallucinationThreshold = 0.3
)

// Warning is an advisory finding on a generated response. It is returned to
// the caller alongside the response instead of blocking it.
type Warning struct {
	Check  string  `json:"check"`
	Reason string  `json:"reason"`
	Score  float64 `json:"score,omitempty"`
}

type outputCheck struct {
	name     string
	blocking bool
	run      func(g *OutputGuard, response string, cards []deck.DrawnCard) (GuardrailResult, *Warning)
}

// OutputGuard validates generated readings before they are returned.
// Blocking checks reject the response outright, advisory checks attach a
// warning and let it through.
type OutputGuard struct {
	maxResponseLength      int
	minResponseLength      int
	forbiddenTerms         []string
	hallucinationThreshold float64
	logger                 *zerolog.Logger

	checks []outputCheck
}

func NewOutputGuard(logger *zerolog.Logger) *OutputGuard {
	return NewOutputGuardWithLimits(0, 0, logger)
}

func NewOutputGuardWithLimits(maxResponseLength, minResponseLength int, logger *zerolog.Logger) *OutputGuard {
	if maxResponseLength <= 0 {
		maxResponseLength = DefaultMaxResponseLength
	}
	if minResponseLength <= 0 {
		minResponseLength = DefaultMinResponseLength
	}
	g := &OutputGuard{
		maxResponseLength:      maxResponseLength,
		minResponseLength:      minResponseLength,
		forbiddenTerms:         DefaultForbiddenTerms,
		hallucinationThreshold: DefaultHallucinationThreshold,
		logger:                 logger,
	}
	g.checks = []outputCheck{
		{name: "length", blocking: true, run: (*OutputGuard).checkLength},
		{name: "forbidden_terms", blocking: true, run: (*OutputGuard).checkForbiddenTerms},
		{name: "structure", blocking: true, run: (*OutputGuard).checkStructure},
		{name: "hallucination", blocking: false, run: (*OutputGuard).checkHallucination},
	}
	return g
}

// Validate runs all output checks in order. The first failing blocking check
// rejects the response. A non-nil Warning is returned when an advisory check
// fires on an otherwise safe response.
func (g *OutputGuard) Validate(response string, cards []deck.DrawnCard) (GuardrailResult, *Warning) {
	var warning *Warning
	for _, c := range g.checks {
		result, w := c.run(g, response, cards)
		if !result.IsSafe {
			if c.blocking {
				g.logger.Warn().
					Str("check", c.name).
					Str("reason", result.Reason).
					Msg("generated response rejected")
				return result, nil
			}
			if warning == nil && w != nil {
				g.logger.Warn().
					Str("check", c.name).
					Str("reason", w.Reason).
					Float64("score", w.Score).
					Msg("advisory output check fired")
				warning = w
			}
		}
	}
	return Safe(), warning
}

func (g *OutputGuard) checkLength(response string, _ []deck.DrawnCard) (GuardrailResult, *Warning) {
	n := utf8.RuneCountInString(response)
	if n < g.minResponseLength {
		return Unsafe(fmt.Sprintf("response too short (<%d characters)", g.minResponseLength)), nil
	}
	if n > g.maxResponseLength {
		return Unsafe(fmt.Sprintf("response too long (>%d characters)", g.maxResponseLength)), nil
	}
	return Safe(), nil
}

func (g *OutputGuard) checkForbiddenTerms(response string, _ []deck.DrawnCard) (GuardrailResult, *Warning) {
	lower := strings.ToLower(response)
	for _, term := range g.forbiddenTerms {
		if strings.Contains(lower, term) {
			return Unsafe("forbidden term in response: " + term), nil
		}
	}
	return Safe(), nil
}

// checkStructure verifies the response actually talks about the drawn cards:
// at least half of them must be mentioned by name, and the text must have
// enough substance for a reading.
func (g *OutputGuard) checkStructure(response string, cards []deck.DrawnCard) (GuardrailResult, *Warning) {
	if len(cards) > 0 {
		mentioned := 0
		for _, c := range cards {
			if strings.Contains(response, c.Card.Name) {
				mentioned++
			}
		}
		if mentioned*2 < len(cards) {
			return Unsafe(fmt.Sprintf("response mentions only %d of %d drawn cards", mentioned, len(cards))), nil
		}
	}

	n := utf8.RuneCountInString(response)
	if n < 100 {
		return Unsafe("response lacks substance for a reading"), nil
	}
	if n > 200 && !strings.Contains(response, "\n") {
		return Unsafe("long response has no paragraph structure"), nil
	}
	return Safe(), nil
}

// checkHallucination scores how likely the response invents cards that were
// never drawn. Advisory only.
func (g *OutputGuard) checkHallucination(response string, cards []deck.DrawnCard) (GuardrailResult, *Warning) {
	drawn := make(map[string]bool, len(cards))
	mentioned := 0
	for _, c := range cards {
		drawn[c.Card.Name] = true
		if strings.Contains(response, c.Card.Name) {
			mentioned++
		}
	}

	score := 0.0
	if mentioned < len(cards) {
		score += 0.1
	}
	for _, name := range deck.MajorArcanaNames() {
		if drawn[name] {
			continue
		}
		if strings.Contains(response, name) {
			score += 0.15
		}
	}
	if score > 1.0 {
		score = 1.0
	}

	if score > g.hallucinationThreshold {
		w := &Warning{
			Check:  "hallucination",
			Reason: "response may reference cards that were not drawn",
			Score:  score,
		}
		return GuardrailResult{IsSafe: false, Reason: w.Reason, Confidence: score}, w
	}
	return Safe(), nil
}
