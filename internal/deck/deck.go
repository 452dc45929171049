package deck

import "fmt"

// Size is the number of cards in a full tarot deck.
const Size = 78

type Arcana string

const (
	ArcanaMajor Arcana = "major"
	ArcanaMinor Arcana = "minor"
)

type Suit string

const (
	SuitCups      Suit = "Cups"
	SuitPentacles Suit = "Pentacles"
	SuitSwords    Suit = "Swords"
	SuitWands     Suit = "Wands"
)

// Card is one entry of the fixed 78-card deck. Index is the canonical
// position inside the card's asset directory: 0-21 for major arcana,
// 0-13 for minor arcana (Ace=0, Two-Ten=1-9, Page/Knight/Queen/King=10-13).
type Card struct {
	Name   string
	Suit   Suit // empty for major arcana
	Arcana Arcana
	Index  int
}

var majorArcanaNames = []string{
	"The Fool", "The Magician", "The High Priestess", "The Empress", "The Emperor",
	"The Hierophant", "The Lovers", "The Chariot", "Strength", "The Hermit",
	"Wheel of Fortune", "Justice", "The Hanged Man", "Death", "Temperance",
	"The Devil", "The Tower", "The Star", "The Moon", "The Sun",
	"Judgement", "The World",
}

var minorRanks = []string{
	"Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Page", "Knight", "Queen", "King",
}

var suits = []Suit{SuitCups, SuitPentacles, SuitSwords, SuitWands}

// Deck is the immutable 78-card set, constructed once at process start.
type Deck struct {
	cards  []Card
	byName map[string]Card
}

func New() *Deck {
	cards := make([]Card, 0, Size)

	for i, name := range majorArcanaNames {
		cards = append(cards, Card{
			Name:   name,
			Arcana: ArcanaMajor,
			Index:  i,
		})
	}

	for _, suit := range suits {
		for i, rank := range minorRanks {
			cards = append(cards, Card{
				Name:   fmt.Sprintf("%s of %s", rank, suit),
				Suit:   suit,
				Arcana: ArcanaMinor,
				Index:  i,
			})
		}
	}

	byName := make(map[string]Card, len(cards))
	for _, c := range cards {
		byName[c.Name] = c
	}

	return &Deck{cards: cards, byName: byName}
}

// Cards returns a copy of the full deck in canonical order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

func (d *Deck) Lookup(name string) (Card, bool) {
	c, ok := d.byName[name]
	return c, ok
}

// MajorArcanaNames returns the 22 canonical major arcana names in order.
func MajorArcanaNames() []string {
	out := make([]string, len(majorArcanaNames))
	copy(out, majorArcanaNames)
	return out
}
