package guardrails

import (
	"strings"

	"github.com/rs/zerolog"
)

var medicalKeywords = []string{
	"хвороба", "лікування", "діагноз", "symptom", "diagnosis", "treatment", "disease", "cancer", "рак",
}

var legalKeywords = []string{
	"суд", "закон", "legal", "lawsuit", "судова справа", "court",
}

var financialKeywords = []string{
	"інвестиції", "біткоїн", "акції", "investment", "stock", "crypto",
}

// ContentPolicyGuard screens questions for domains the agent must refuse:
// medical and legal topics hard-block, financial topics are flagged in the
// log but allowed. It does not touch the stats aggregator; the caller
// records blocks.
type ContentPolicyGuard struct {
	logger *zerolog.Logger
}

func NewContentPolicyGuard(logger *zerolog.Logger) *ContentPolicyGuard {
	return &ContentPolicyGuard{logger: logger}
}

func (g *ContentPolicyGuard) Check(question string) GuardrailResult {
	lower := strings.ToLower(question)

	for _, keyword := range medicalKeywords {
		if strings.Contains(lower, keyword) {
			return Unsafe("tarot cannot give medical advice, consult a professional")
		}
	}

	for _, keyword := range legalKeywords {
		if strings.Contains(lower, keyword) {
			return Unsafe("tarot cannot give legal advice, consult a lawyer")
		}
	}

	for _, keyword := range financialKeywords {
		if strings.Contains(lower, keyword) {
			g.logger.Warn().Str("keyword", keyword).Str("question", question).Msg("financial topic in question")
			break
		}
	}

	return Safe()
}
