package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeCardFiles(t *testing.T, dir string, index int, name string) {
	t.Helper()

	files := map[string]string{
		"name":    name,
		"desc":    "Description of " + name,
		"umean":   "Upright meaning of " + name,
		"rmean":   "Reversed meaning of " + name,
		"short-u": "new beginnings",
		"short-r": "recklessness",
	}
	for suffix, content := range files {
		path := filepath.Join(dir, fmt.Sprintf("%d-%s.txt", index, suffix))
		if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func writeDeck(t *testing.T, base string) {
	t.Helper()

	major := filepath.Join(base, "MajorArcana")
	if err := os.MkdirAll(major, 0o755); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 22; i++ {
		writeCardFiles(t, major, i, fmt.Sprintf("Major %d", i))
	}

	for _, suit := range minorSuits {
		dir := filepath.Join(base, "MinorArcana_"+suit)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 14; i++ {
			writeCardFiles(t, dir, i, fmt.Sprintf("%s %d", suit, i))
		}
	}
}

func TestLoadAllCards(t *testing.T) {
	base := t.TempDir()
	writeDeck(t, base)

	cards, err := NewLoader(base).LoadAllCards()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cards) != 78 {
		t.Fatalf("expected 78 cards, got %d", len(cards))
	}

	first := cards[0]
	if first.Name != "Major 0" || first.CardType != "major" || first.Suit != "" {
		t.Errorf("unexpected first card: %+v", first)
	}
	if first.Description != "Description of Major 0" {
		t.Errorf("expected trimmed description, got %q", first.Description)
	}

	last := cards[77]
	if last.Name != "Wands 13" || last.CardType != "minor" || last.Suit != "Wands" {
		t.Errorf("unexpected last card: %+v", last)
	}
}

func TestLoadAllCards_MissingOptionalFiles(t *testing.T) {
	base := t.TempDir()
	writeDeck(t, base)

	// Remove an optional file; the card still loads with an empty field.
	if err := os.Remove(filepath.Join(base, "MajorArcana", "3-rmean.txt")); err != nil {
		t.Fatal(err)
	}

	cards, err := NewLoader(base).LoadAllCards()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cards[3].ReversedMeaning != "" {
		t.Errorf("expected empty reversed meaning, got %q", cards[3].ReversedMeaning)
	}
}

func TestLoadAllCards_MissingName(t *testing.T) {
	base := t.TempDir()
	writeDeck(t, base)

	if err := os.Remove(filepath.Join(base, "MajorArcana", "5-name.txt")); err != nil {
		t.Fatal(err)
	}

	if _, err := NewLoader(base).LoadAllCards(); err == nil {
		t.Error("expected error for card with no name file")
	}
}

func TestBuildDocuments(t *testing.T) {
	cards := []CardData{{
		Name:            "The Fool",
		Description:     "A new journey",
		UprightMeaning:  "beginnings",
		ReversedMeaning: "recklessness",
		ShortUpright:    "start",
		ShortReversed:   "chaos",
		CardType:        "major",
	}}

	documents := BuildDocuments(cards)
	if len(documents) != 3 {
		t.Fatalf("expected 3 documents per card, got %d", len(documents))
	}

	aspects := map[string]bool{}
	for _, doc := range documents {
		aspects[doc.Aspect] = true
		if doc.CardName != "The Fool" {
			t.Errorf("unexpected card name %q", doc.CardName)
		}
		if doc.ID == "" {
			t.Error("expected generated document id")
		}
	}
	for _, aspect := range []string{"full", "upright", "reversed"} {
		if !aspects[aspect] {
			t.Errorf("missing %s aspect document", aspect)
		}
	}
}
