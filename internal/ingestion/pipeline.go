package ingestion

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/database"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/embedding"
)

const batchSize = 25

type Pipeline struct {
	loader   *Loader
	embedder *embedding.BedrockEmbedder
	db       *database.DB
}

func NewPipeline(loader *Loader, embedder *embedding.BedrockEmbedder, db *database.DB) *Pipeline {
	return &Pipeline{
		loader:   loader,
		embedder: embedder,
		db:       db,
	}
}

// IngestCards loads every card, embeds the documents in batches and stores
// them atomically.
func (p *Pipeline) IngestCards(ctx context.Context) error {
	log.Info().Msg("Starting card ingestion")

	cards, err := p.loader.LoadAllCards()
	if err != nil {
		return fmt.Errorf("failed to load cards: %w", err)
	}
	log.Info().Int("card_count", len(cards)).Msg("Cards loaded")

	documents := BuildDocuments(cards)
	log.Info().Int("document_count", len(documents)).Msg("Documents prepared")

	tx, err := p.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := 0; i < len(documents); i += batchSize {
		end := i + batchSize
		if end > len(documents) {
			end = len(documents)
		}
		subset := documents[i:end]

		content := make([]string, 0, len(subset))
		for _, doc := range subset {
			content = append(content, doc.Content)
		}

		embeddings, err := p.embedder.GenerateBatchEmbeddings(ctx, content)
		if err != nil {
			return fmt.Errorf("failed to generate embeddings for batch %d: %w", i/batchSize, err)
		}

		if err := p.db.InsertCardDocuments(ctx, tx, subset, embeddings); err != nil {
			return fmt.Errorf("failed to store batch %d: %w", i/batchSize, err)
		}

		log.Info().Int("batch", i/batchSize).Int("documents", len(subset)).Msg("Batch stored")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info().Int("documents", len(documents)).Msg("Ingestion complete")

	return nil
}
