package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CardData is the raw text loaded for one card from the assets directory.
type CardData struct {
	Name            string
	Description     string
	UprightMeaning  string
	ReversedMeaning string
	ShortUpright    string
	ShortReversed   string
	CardType        string
	Suit            string
}

// Loader reads card text files. Layout: MajorArcana/ holds indices 0-21,
// MinorArcana_<Suit>/ holds indices 0-13, each index having
// <n>-name.txt, <n>-desc.txt, <n>-umean.txt, <n>-rmean.txt,
// <n>-short-u.txt and <n>-short-r.txt. Missing files read as empty.
type Loader struct {
	basePath string
}

func NewLoader(basePath string) *Loader {
	return &Loader{basePath: basePath}
}

var minorSuits = []string{"Cups", "Pentacles", "Swords", "Wands"}

func (l *Loader) LoadAllCards() ([]CardData, error) {
	cards := make([]CardData, 0, 78)

	majorPath := filepath.Join(l.basePath, "MajorArcana")
	for i := 0; i < 22; i++ {
		card := l.loadCard(i, majorPath, "major", "")
		if card.Name == "" {
			return nil, fmt.Errorf("major arcana card %d has no name file in %s", i, majorPath)
		}
		cards = append(cards, card)
	}

	for _, suit := range minorSuits {
		suitPath := filepath.Join(l.basePath, "MinorArcana_"+suit)
		for i := 0; i < 14; i++ {
			card := l.loadCard(i, suitPath, "minor", suit)
			if card.Name == "" {
				return nil, fmt.Errorf("minor arcana card %d has no name file in %s", i, suitPath)
			}
			cards = append(cards, card)
		}
	}

	return cards, nil
}

func (l *Loader) loadCard(index int, cardPath string, cardType string, suit string) CardData {
	base := fmt.Sprintf("%d", index)
	return CardData{
		Name:            readFileOrEmpty(filepath.Join(cardPath, base+"-name.txt")),
		Description:     readFileOrEmpty(filepath.Join(cardPath, base+"-desc.txt")),
		UprightMeaning:  readFileOrEmpty(filepath.Join(cardPath, base+"-umean.txt")),
		ReversedMeaning: readFileOrEmpty(filepath.Join(cardPath, base+"-rmean.txt")),
		ShortUpright:    readFileOrEmpty(filepath.Join(cardPath, base+"-short-u.txt")),
		ShortReversed:   readFileOrEmpty(filepath.Join(cardPath, base+"-short-r.txt")),
		CardType:        cardType,
		Suit:            suit,
	}
}

func readFileOrEmpty(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
