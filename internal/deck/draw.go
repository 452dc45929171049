package deck

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

type Orientation string

const (
	Upright  Orientation = "upright"
	Reversed Orientation = "reversed"
)

// DrawnCard is a card selected for one reading session, together with its
// orientation and the resolved image reference. It is owned by the session
// and never persisted.
type DrawnCard struct {
	Card        Card
	Orientation Orientation
	ImageRef    string
}

// DrawEngine selects cards uniformly at random from the deck and flips an
// independent fair coin for each card's orientation.
type DrawEngine struct {
	deck   *Deck
	images *ImageResolver

	mu  sync.Mutex
	rng *rand.Rand
}

// NewDrawEngine builds an engine over the given deck. A nil rng gets a
// time-seeded source; tests inject a fixed seed.
func NewDrawEngine(d *Deck, images *ImageResolver, rng *rand.Rand) *DrawEngine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &DrawEngine{deck: d, images: images, rng: rng}
}

// Draw returns n distinct cards from a fresh uniform permutation of the deck.
func (e *DrawEngine) Draw(n int) ([]DrawnCard, error) {
	if n < 1 {
		return nil, fmt.Errorf("cannot draw %d cards, need at least 1", n)
	}
	if n > Size {
		return nil, fmt.Errorf("cannot draw %d cards from a %d-card deck", n, Size)
	}

	e.mu.Lock()
	perm := e.rng.Perm(Size)
	flips := make([]bool, n)
	for i := range flips {
		flips[i] = e.rng.Intn(2) == 1
	}
	e.mu.Unlock()

	drawn := make([]DrawnCard, 0, n)
	for i := 0; i < n; i++ {
		card := e.deck.cards[perm[i]]
		orientation := Upright
		if flips[i] {
			orientation = Reversed
		}
		drawn = append(drawn, DrawnCard{
			Card:        card,
			Orientation: orientation,
			ImageRef:    e.images.Resolve(card, orientation),
		})
	}
	return drawn, nil
}

// DrawOne picks a single card uniformly from the full deck. Callers that
// replace a card mid-session filter duplicates themselves.
func (e *DrawEngine) DrawOne() DrawnCard {
	e.mu.Lock()
	idx := e.rng.Intn(Size)
	reversed := e.rng.Intn(2) == 1
	e.mu.Unlock()

	card := e.deck.cards[idx]
	orientation := Upright
	if reversed {
		orientation = Reversed
	}
	return DrawnCard{
		Card:        card,
		Orientation: orientation,
		ImageRef:    e.images.Resolve(card, orientation),
	}
}
