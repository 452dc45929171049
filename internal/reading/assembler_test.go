package reading

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/deck"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/knowledge"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/knowledge/mocks"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// scriptedRedrawer returns cards in order, failing the test when the script
// runs out.
type scriptedRedrawer struct {
	t     *testing.T
	cards []deck.DrawnCard
	next  int
}

func (r *scriptedRedrawer) DrawOne() deck.DrawnCard {
	if r.next >= len(r.cards) {
		r.t.Fatal("unexpected extra redraw")
	}
	card := r.cards[r.next]
	r.next++
	return card
}

// loopingRedrawer cycles its cards forever.
type loopingRedrawer struct {
	cards []deck.DrawnCard
	next  int
}

func (r *loopingRedrawer) DrawOne() deck.DrawnCard {
	card := r.cards[r.next%len(r.cards)]
	r.next++
	return card
}

func upright(name string) deck.DrawnCard {
	d := deck.New()
	card, ok := d.Lookup(name)
	if !ok {
		panic("unknown card " + name)
	}
	return deck.DrawnCard{Card: card, Orientation: deck.Upright}
}

func reversed(name string) deck.DrawnCard {
	c := upright(name)
	c.Orientation = deck.Reversed
	return c
}

func entryFor(name string) []knowledge.Entry {
	return []knowledge.Entry{{
		Content:         "Загальний опис карти " + name,
		UprightMeaning:  "Пряме значення карти " + name,
		ReversedMeaning: "Перевернуте значення карти " + name,
		Metadata:        knowledge.Metadata{Name: name, Type: "major"},
	}}
}

func queryFor(name string) string {
	return "Детальна інформація про карту " + name
}

func TestAssemble_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Search(gomock.Any(), queryFor("The Fool"), 1).Return(entryFor("The Fool"), nil)
	store.EXPECT().Search(gomock.Any(), queryFor("The Magician"), 1).Return(entryFor("The Magician"), nil)
	store.EXPECT().Search(gomock.Any(), queryFor("The Star"), 1).Return(entryFor("The Star"), nil)

	drawn := []deck.DrawnCard{upright("The Fool"), reversed("The Magician"), upright("The Star")}
	assembler := NewContextAssembler(store, &scriptedRedrawer{t: t}, newTestLogger())

	contextText, finalCards, err := assembler.Assemble(context.Background(), drawn, "питання")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(finalCards) != 3 {
		t.Fatalf("expected 3 final cards, got %d", len(finalCards))
	}
	for i, card := range finalCards {
		if card.Card.Name != drawn[i].Card.Name {
			t.Errorf("card %d: expected %s, got %s", i, drawn[i].Card.Name, card.Card.Name)
		}
	}

	fragments := strings.Split(contextText, "\n\n")
	if len(fragments) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(fragments))
	}
	if !strings.HasPrefix(fragments[0], "Карта The Fool в прямому положенні:") {
		t.Errorf("unexpected first fragment: %q", fragments[0])
	}
	if !strings.HasPrefix(fragments[1], "Карта The Magician в перевернутому положенні:") {
		t.Errorf("unexpected second fragment: %q", fragments[1])
	}
	if !strings.Contains(fragments[1], "Перевернуте значення") {
		t.Errorf("expected reversed meaning in fragment: %q", fragments[1])
	}
}

func TestAssemble_ContentFallback(t *testing.T) {
	ctrl := gomock.NewController(t)

	entry := []knowledge.Entry{{
		Content:  "Лише загальний опис",
		Metadata: knowledge.Metadata{Name: "Death", Type: "major"},
	}}

	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Search(gomock.Any(), queryFor("Death"), 1).Return(entry, nil)

	assembler := NewContextAssembler(store, &scriptedRedrawer{t: t}, newTestLogger())

	contextText, _, err := assembler.Assemble(context.Background(), []deck.DrawnCard{reversed("Death")}, "питання")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(contextText, "Лише загальний опис") {
		t.Errorf("expected content fallback in context: %q", contextText)
	}
}

func TestAssemble_ReplacementDraw(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockStore(ctrl)
	// The Fool has no entry; the redrawn Justice does.
	store.EXPECT().Search(gomock.Any(), queryFor("The Fool"), 1).Return(nil, nil)
	store.EXPECT().Search(gomock.Any(), queryFor("Justice"), 1).Return(entryFor("Justice"), nil)
	store.EXPECT().Search(gomock.Any(), queryFor("The Star"), 1).Return(entryFor("The Star"), nil)

	// First replacement candidate is already in the session and is skipped
	// without a store query.
	redrawer := &scriptedRedrawer{t: t, cards: []deck.DrawnCard{upright("The Star"), upright("Justice")}}

	drawn := []deck.DrawnCard{upright("The Fool"), upright("The Star")}
	assembler := NewContextAssembler(store, redrawer, newTestLogger())

	contextText, finalCards, err := assembler.Assemble(context.Background(), drawn, "питання")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(finalCards) != 2 {
		t.Fatalf("expected 2 final cards, got %d", len(finalCards))
	}
	if finalCards[0].Card.Name != "Justice" {
		t.Errorf("expected replacement Justice first, got %s", finalCards[0].Card.Name)
	}
	if finalCards[1].Card.Name != "The Star" {
		t.Errorf("expected The Star second, got %s", finalCards[1].Card.Name)
	}
	if strings.Contains(contextText, "The Fool") {
		t.Errorf("discarded card still present in context: %q", contextText)
	}
}

func TestAssemble_KnowledgeExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)

	// No card ever resolves.
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Search(gomock.Any(), gomock.Any(), 1).Return(nil, nil).AnyTimes()

	redrawer := &loopingRedrawer{cards: []deck.DrawnCard{upright("Justice"), upright("Strength"), upright("The Moon")}}

	assembler := NewContextAssembler(store, redrawer, newTestLogger())

	_, _, err := assembler.Assemble(context.Background(), []deck.DrawnCard{upright("The Fool")}, "питання")
	if !errors.Is(err, ErrKnowledgeExhausted) {
		t.Errorf("expected ErrKnowledgeExhausted, got %v", err)
	}
}

func TestAssemble_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)

	storeErr := errors.New("connection refused")
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Search(gomock.Any(), gomock.Any(), 1).Return(nil, storeErr)

	assembler := NewContextAssembler(store, &scriptedRedrawer{t: t}, newTestLogger())

	_, _, err := assembler.Assemble(context.Background(), []deck.DrawnCard{upright("The Fool")}, "питання")
	if !errors.Is(err, storeErr) {
		t.Errorf("expected store error propagated, got %v", err)
	}
}
