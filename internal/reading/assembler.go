package reading

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/deck"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/knowledge"
)

// maxFragmentChars caps each card fragment to keep the generation context
// bounded. Truncation preserves fragment boundaries.
const maxFragmentChars = 1200

// Redrawer supplies replacement cards when a drawn card has no knowledge
// base entry.
type Redrawer interface {
	DrawOne() deck.DrawnCard
}

// ContextAssembler resolves drawn cards to knowledge entries and builds the
// textual context for generation. A card with no entry is discarded and
// replaced, one redraw at a time, within a shared per-session retry budget.
type ContextAssembler struct {
	store      knowledge.Store
	redrawer   Redrawer
	maxRetries int
	logger     *zerolog.Logger
}

func NewContextAssembler(store knowledge.Store, redrawer Redrawer, logger *zerolog.Logger) *ContextAssembler {
	return &ContextAssembler{
		store:      store,
		redrawer:   redrawer,
		maxRetries: deck.Size,
		logger:     logger,
	}
}

// Assemble returns the concatenated card fragments in draw order and the
// final card set after any replacements. ErrKnowledgeExhausted is returned
// when the retry budget runs out before every card resolves.
func (a *ContextAssembler) Assemble(ctx context.Context, drawn []deck.DrawnCard, question string) (string, []deck.DrawnCard, error) {
	seen := make(map[string]bool, len(drawn))
	for _, card := range drawn {
		seen[card.Card.Name] = true
	}

	fragments := make([]string, 0, len(drawn))
	finalCards := make([]deck.DrawnCard, 0, len(drawn))
	retriesLeft := a.maxRetries

	for _, card := range drawn {
		resolved, entry, err := a.resolve(ctx, card, seen, &retriesLeft)
		if err != nil {
			return "", nil, err
		}

		fragments = append(fragments, buildFragment(resolved, entry))
		finalCards = append(finalCards, resolved)
	}

	return strings.Join(fragments, "\n\n"), finalCards, nil
}

// resolve looks up the card's entry, redrawing replacements until one is
// found or the shared retry budget is exhausted.
func (a *ContextAssembler) resolve(ctx context.Context, card deck.DrawnCard, seen map[string]bool, retriesLeft *int) (deck.DrawnCard, knowledge.Entry, error) {
	current := card

	for {
		entry, found, err := a.lookup(ctx, current.Card.Name)
		if err != nil {
			return deck.DrawnCard{}, knowledge.Entry{}, err
		}
		if found {
			return current, entry, nil
		}

		a.logger.Warn().Str("card", current.Card.Name).Msg("no knowledge entry for card, redrawing")

		for {
			if *retriesLeft <= 0 {
				return deck.DrawnCard{}, knowledge.Entry{}, ErrKnowledgeExhausted
			}
			*retriesLeft--

			replacement := a.redrawer.DrawOne()
			if !seen[replacement.Card.Name] {
				seen[replacement.Card.Name] = true
				current = replacement
				break
			}
		}
	}
}

func (a *ContextAssembler) lookup(ctx context.Context, cardName string) (knowledge.Entry, bool, error) {
	query := "Детальна інформація про карту " + cardName

	entries, err := a.store.Search(ctx, query, 1)
	if err != nil {
		return knowledge.Entry{}, false, fmt.Errorf("knowledge store query for %s failed: %w", cardName, err)
	}
	if len(entries) == 0 || entries[0].Metadata.Name != cardName {
		return knowledge.Entry{}, false, nil
	}

	return entries[0], true, nil
}

func buildFragment(card deck.DrawnCard, entry knowledge.Entry) string {
	var content, position string
	if card.Orientation == deck.Reversed {
		content = entry.ReversedMeaning
		position = "перевернутому положенні"
	} else {
		content = entry.UprightMeaning
		position = "прямому положенні"
	}
	if content == "" {
		content = entry.Content
	}

	return truncateFragment(fmt.Sprintf("Карта %s в %s:\n%s", card.Card.Name, position, content))
}

func truncateFragment(fragment string) string {
	if utf8.RuneCountInString(fragment) <= maxFragmentChars {
		return fragment
	}
	runes := []rune(fragment)
	return string(runes[:maxFragmentChars]) + "…"
}
