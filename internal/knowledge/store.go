package knowledge

import (
	"context"
	"errors"
	"fmt"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/database"
)

// ErrNotFound is returned by GetCard for names absent from the knowledge base.
var ErrNotFound = errors.New("card not found in knowledge base")

// Metadata identifies the card an entry belongs to.
type Metadata struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Suit string `json:"suit,omitempty"`
}

// Entry is one knowledge base hit for a search query.
type Entry struct {
	Content         string   `json:"content"`
	UprightMeaning  string   `json:"upright_meaning,omitempty"`
	ReversedMeaning string   `json:"reversed_meaning,omitempty"`
	Metadata        Metadata `json:"metadata"`
	Score           float64  `json:"score"`
}

// Store is the knowledge base queried during context assembly.
// This allows mocking in tests without a running database.
type Store interface {
	Search(ctx context.Context, query string, limit int) ([]Entry, error)
	GetCard(ctx context.Context, name string) (*Entry, error)
}

// Embedder turns query text into the vector used for similarity search.
type Embedder interface {
	GenerateEmbeddings(ctx context.Context, text string) ([]float32, error)
}

type PostgresStore struct {
	db       *database.DB
	embedder Embedder
}

func NewPostgresStore(db *database.DB, embedder Embedder) *PostgresStore {
	return &PostgresStore{
		db:       db,
		embedder: embedder,
	}
}

func (s *PostgresStore) Search(ctx context.Context, query string, limit int) ([]Entry, error) {
	embeddings, err := s.embedder.GenerateEmbeddings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unable to generate embeddings: %w", err)
	}

	documents, err := s.db.SemanticSearch(ctx, embeddings, limit)
	if err != nil {
		return nil, fmt.Errorf("semantic search failed: %w", err)
	}

	entries := make([]Entry, 0, len(documents))
	for _, doc := range documents {
		entries = append(entries, Entry{
			Content:         doc.Content,
			UprightMeaning:  doc.UprightMeaning,
			ReversedMeaning: doc.ReversedMeaning,
			Metadata: Metadata{
				Name: doc.CardName,
				Type: doc.CardType,
				Suit: doc.Suit,
			},
			Score: DistanceToScore(doc.Distance),
		})
	}

	return entries, nil
}

// GetCard fetches one card's full aspect by exact name, without an
// embedding round trip.
func (s *PostgresStore) GetCard(ctx context.Context, name string) (*Entry, error) {
	doc, err := s.db.GetCardByName(ctx, name)
	if errors.Is(err, database.ErrCardNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("card lookup failed: %w", err)
	}

	return &Entry{
		Content:         doc.Content,
		UprightMeaning:  doc.UprightMeaning,
		ReversedMeaning: doc.ReversedMeaning,
		Metadata: Metadata{
			Name: doc.CardName,
			Type: doc.CardType,
			Suit: doc.Suit,
		},
	}, nil
}

// DistanceToScore maps a cosine distance to a similarity score in [0, 1].
func DistanceToScore(distance float64) float64 {
	score := 1 - distance
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
