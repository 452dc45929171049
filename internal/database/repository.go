package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
)

// ErrCardNotFound is returned by lookups for names that are not in the
// knowledge base.
var ErrCardNotFound = errors.New("card not found")

func (db *DB) InsertCardDocuments(ctx context.Context, tx pgx.Tx, documents []CardDocument, embeddings [][]float32) error {
	if len(documents) != len(embeddings) {
		return fmt.Errorf("document count %d does not match embedding count %d", len(documents), len(embeddings))
	}

	query := `
	INSERT INTO card_documents
	  (id, card_name, card_type, suit, aspect, content, upright_meaning, reversed_meaning, embedding)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for i, doc := range documents {
		_, err := tx.Exec(ctx, query,
			doc.ID, doc.CardName, doc.CardType, doc.Suit, doc.Aspect,
			doc.Content, doc.UprightMeaning, doc.ReversedMeaning,
			pgvector.NewVector(embeddings[i]),
		)
		if err != nil {
			return fmt.Errorf("failed to insert document for card %s (%s): %w", doc.CardName, doc.Aspect, err)
		}
	}

	return nil
}

func (db *DB) GetCardByName(ctx context.Context, name string) (*CardDocument, error) {
	query := `
	SELECT id, card_name, card_type, suit, aspect, content, upright_meaning, reversed_meaning
	FROM card_documents
	WHERE card_name = $1 AND aspect = 'full'`

	var doc CardDocument
	err := db.Pool.QueryRow(ctx, query, name).Scan(
		&doc.ID, &doc.CardName, &doc.CardType, &doc.Suit, &doc.Aspect,
		&doc.Content, &doc.UprightMeaning, &doc.ReversedMeaning,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("unable to fetch card %s: %w", name, err)
	}

	return &doc, nil
}

// TODO: Add support for cosine and euclidean distance configuration
func (db *DB) SemanticSearch(ctx context.Context, queryEmbeddings []float32, limit int) ([]CardDocument, error) {
	pgvectorEmbeddings := pgvector.NewVector(queryEmbeddings)

	query := `
	SELECT
	  id,
	  card_name,
	  card_type,
	  suit,
	  aspect,
	  content,
	  upright_meaning,
	  reversed_meaning,
	  embedding <=> $1 AS distance
	FROM card_documents
	ORDER BY distance ASC
	LIMIT $2`

	rows, err := db.Pool.Query(ctx, query, pgvectorEmbeddings, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to query the database: %w", err)
	}

	defer rows.Close()

	var documents []CardDocument
	for rows.Next() {
		var doc CardDocument

		err := rows.Scan(
			&doc.ID, &doc.CardName, &doc.CardType, &doc.Suit, &doc.Aspect,
			&doc.Content, &doc.UprightMeaning, &doc.ReversedMeaning, &doc.Distance,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		documents = append(documents, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return documents, nil
}

func (db *DB) DeleteCardDocuments(ctx context.Context, cardName string) error {
	query := `DELETE FROM card_documents WHERE card_name = $1`

	result, err := db.Pool.Exec(ctx, query, cardName)
	if err != nil {
		return fmt.Errorf("failed to delete documents for card %s: %w", cardName, err)
	}

	rowsAffected := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().Str("card_name", cardName).Msg("Card not found")
	} else {
		log.Info().Str("card_name", cardName).Int64("rows", rowsAffected).Msg("Card documents deleted")
	}

	return nil
}

// TODO: Add pagination
func (db *DB) ListCards(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT card_name FROM card_documents ORDER BY card_name`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch card names: %w", err)
	}

	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan card name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return names, nil
}
