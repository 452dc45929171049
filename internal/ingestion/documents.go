package ingestion

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/database"
)

// BuildDocuments expands each card into three documents: the full
// description plus one per orientation aspect. The per-aspect documents let
// similarity search land on the orientation the session actually drew.
func BuildDocuments(cards []CardData) []database.CardDocument {
	documents := make([]database.CardDocument, 0, len(cards)*3)

	for _, card := range cards {
		fullContent := fmt.Sprintf(`Card: %s
Type: %s Arcana%s

Description:
%s

Upright Meaning:
%s
Key upright meanings: %s

Reversed Meaning:
%s
Key reversed meanings: %s`,
			card.Name, card.CardType, suitLine(card.Suit),
			card.Description,
			card.UprightMeaning, card.ShortUpright,
			card.ReversedMeaning, card.ShortReversed)

		documents = append(documents, database.CardDocument{
			ID:              uuid.New().String(),
			CardName:        card.Name,
			CardType:        card.CardType,
			Suit:            card.Suit,
			Aspect:          "full",
			Content:         fullContent,
			UprightMeaning:  card.UprightMeaning,
			ReversedMeaning: card.ReversedMeaning,
		})

		aspects := []struct {
			name    string
			meaning string
			short   string
		}{
			{"upright", card.UprightMeaning, card.ShortUpright},
			{"reversed", card.ReversedMeaning, card.ShortReversed},
		}

		for _, aspect := range aspects {
			content := fmt.Sprintf(`Card: %s (%s)
Type: %s Arcana%s

%s

Key meanings: %s`,
				card.Name, aspect.name, card.CardType, suitLine(card.Suit),
				aspect.meaning, aspect.short)

			documents = append(documents, database.CardDocument{
				ID:              uuid.New().String(),
				CardName:        card.Name,
				CardType:        card.CardType,
				Suit:            card.Suit,
				Aspect:          aspect.name,
				Content:         content,
				UprightMeaning:  card.UprightMeaning,
				ReversedMeaning: card.ReversedMeaning,
			})
		}
	}

	return documents
}

func suitLine(suit string) string {
	if suit == "" {
		return ""
	}
	return "\nSuit: " + suit
}
