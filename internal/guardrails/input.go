package guardrails

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/stats"
	"github.com/rs/zerolog"
)

const DefaultMaxQuestionLength = 500

// DefaultForbiddenTerms blocks questions (and responses) touching topics the
// agent must not engage with. Matched case-insensitively as substrings.
var DefaultForbiddenTerms = []string{
	"самогубство", "suicide", "kill", "вбивство", "смерть людини",
	"наркотики", "drugs", "gambling", "азартні ігри",
	"тероризм", "терроризм", "terrorism", "насилля", "violence",
}

var maliciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)SELECT.*FROM.*WHERE`),
	regexp.MustCompile(`(?i)DROP\s+TABLE`),
	regexp.MustCompile(`(?i)UNION\s+SELECT`),
}

// InputGuard screens raw user questions before any generation cost is
// incurred. Checks run in a fixed order and the first failing check wins.
// Every call counts one request in the aggregator; every rejection counts
// one block keyed by the rejection reason.
type InputGuard struct {
	maxQuestionLength int
	forbiddenTerms    []string
	stats             *stats.Aggregator
	logger            *zerolog.Logger
}

func NewInputGuard(maxQuestionLength int, forbiddenTerms []string, aggregator *stats.Aggregator, logger *zerolog.Logger) *InputGuard {
	if maxQuestionLength <= 0 {
		maxQuestionLength = DefaultMaxQuestionLength
	}
	if len(forbiddenTerms) == 0 {
		forbiddenTerms = DefaultForbiddenTerms
	}
	return &InputGuard{
		maxQuestionLength: maxQuestionLength,
		forbiddenTerms:    forbiddenTerms,
		stats:             aggregator,
		logger:            logger,
	}
}

func (g *InputGuard) Validate(question string) GuardrailResult {
	g.stats.RecordRequest()

	if strings.TrimSpace(question) == "" {
		return g.block("empty question")
	}

	if len([]rune(question)) > g.maxQuestionLength {
		return g.block(fmt.Sprintf("question too long (>%d characters)", g.maxQuestionLength))
	}

	lower := strings.ToLower(question)
	for _, term := range g.forbiddenTerms {
		if strings.Contains(lower, term) {
			return g.block("forbidden term detected: " + term)
		}
	}

	if isSpam(question) {
		return g.block("spam or malformed text")
	}

	if hasMaliciousContent(question) {
		return g.block("suspicious content detected")
	}

	return Safe()
}

func (g *InputGuard) block(reason string) GuardrailResult {
	g.stats.RecordBlocked(reason)
	g.logger.Warn().Str("reason", reason).Msg("question blocked")
	return Unsafe(reason)
}

func isSpam(text string) bool {
	if hasRepeatedRun(text, 6) {
		return true
	}

	runes := []rune(text)
	n := len(runes)

	if n > 10 {
		upper := 0
		for _, r := range runes {
			if unicode.IsUpper(r) {
				upper++
			}
		}
		if float64(upper)/float64(n) > 0.7 {
			return true
		}
	}

	if n > 20 {
		digits := 0
		for _, r := range runes {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		if float64(digits)/float64(n) > 0.5 {
			return true
		}
	}

	return false
}

// hasRepeatedRun reports whether any rune appears at least n times in a row.
// RE2 has no backreferences, so the (.)\1{5,} check is done by hand.
func hasRepeatedRun(text string, n int) bool {
	var prev rune
	count := 0
	for _, r := range text {
		if r == prev {
			count++
		} else {
			prev = r
			count = 1
		}
		if count >= n {
			return true
		}
	}
	return false
}

func hasMaliciousContent(text string) bool {
	for _, pattern := range maliciousPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
