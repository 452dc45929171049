package database

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS card_documents (
	id UUID PRIMARY KEY,
	card_name TEXT NOT NULL,
	card_type TEXT NOT NULL,
	suit TEXT NOT NULL DEFAULT '',
	aspect TEXT NOT NULL,
	content TEXT NOT NULL,
	upright_meaning TEXT NOT NULL DEFAULT '',
	reversed_meaning TEXT NOT NULL DEFAULT '',
	embedding vector(1024),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (card_name, aspect)
);

CREATE INDEX IF NOT EXISTS card_documents_card_name_idx ON card_documents (card_name);
`

// EnsureSchema creates the pgvector extension and the card_documents table
// if they are missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
