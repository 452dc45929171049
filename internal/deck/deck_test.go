package deck

import "testing"

func TestNew_FullDeck(t *testing.T) {
	d := New()
	cards := d.Cards()

	if len(cards) != Size {
		t.Fatalf("expected %d cards, got %d", Size, len(cards))
	}

	major, minor := 0, 0
	names := make(map[string]bool, Size)
	for _, c := range cards {
		if names[c.Name] {
			t.Errorf("duplicate card name: %s", c.Name)
		}
		names[c.Name] = true

		switch c.Arcana {
		case ArcanaMajor:
			major++
			if c.Suit != "" {
				t.Errorf("major arcana %s has suit %s", c.Name, c.Suit)
			}
		case ArcanaMinor:
			minor++
			if c.Suit == "" {
				t.Errorf("minor arcana %s has no suit", c.Name)
			}
		default:
			t.Errorf("card %s has unknown arcana %q", c.Name, c.Arcana)
		}
	}

	if major != 22 {
		t.Errorf("expected 22 major arcana, got %d", major)
	}
	if minor != 56 {
		t.Errorf("expected 56 minor arcana, got %d", minor)
	}
}

func TestNew_CanonicalIndices(t *testing.T) {
	d := New()

	tests := []struct {
		name  string
		index int
	}{
		{"The Fool", 0},
		{"The Magician", 1},
		{"The World", 21},
		{"Ace of Cups", 0},
		{"Two of Wands", 1},
		{"Ten of Swords", 9},
		{"Page of Pentacles", 10},
		{"Knight of Cups", 11},
		{"Queen of Swords", 12},
		{"King of Wands", 13},
	}

	for _, tt := range tests {
		card, ok := d.Lookup(tt.name)
		if !ok {
			t.Errorf("card %s not in deck", tt.name)
			continue
		}
		if card.Index != tt.index {
			t.Errorf("%s: expected index %d, got %d", tt.name, tt.index, card.Index)
		}
	}
}

func TestMajorArcanaNames(t *testing.T) {
	names := MajorArcanaNames()
	if len(names) != 22 {
		t.Fatalf("expected 22 names, got %d", len(names))
	}
	if names[0] != "The Fool" || names[21] != "The World" {
		t.Errorf("canonical order broken: first=%s last=%s", names[0], names[21])
	}
}
