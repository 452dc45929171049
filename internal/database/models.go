package database

// CardDocument is one stored text fragment about a tarot card. Each card has
// one row per aspect: "full" for the combined description, "upright" and
// "reversed" for the orientation-specific meanings.
type CardDocument struct {
	ID              string
	CardName        string
	CardType        string
	Suit            string
	Aspect          string
	Content         string
	UprightMeaning  string
	ReversedMeaning string
	Distance        float64
}
