package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/database"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/embedding"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/ingestion"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/llm/bedrock"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/setup/logger"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = logger.New(os.Getenv("LOG_LEVEL"))

	initSchemaCommand := flag.Bool("init-schema", false, "Create the card_documents table and pgvector extension")
	ingestCommand := flag.Bool("ingest", false, "Load, embed and store all card documents")
	cardsPath := flag.String("cards-path", "resources/cards", "Path to the card text files")

	deleteCommand := flag.Bool("delete", false, "Delete all documents for one card")
	cardName := flag.String("card-name", "", "Card name to delete")

	listCommand := flag.Bool("list", false, "List all cards in the knowledge base")

	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Unable to load env variables")
	}

	ctx := context.Background()

	config := database.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Database: os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}

	db, err := database.NewWithBackoff(ctx, config, 3)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
		return
	}

	defer db.Close()

	log.Info().Msg("Database connected")

	switch {
	case *initSchemaCommand:
		if err := db.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize schema")
		}
		log.Info().Msg("Schema initialized")

	case *ingestCommand:
		region := os.Getenv("AWS_REGION")
		modelID := os.Getenv("CLAUDE_MODEL_ID")

		bedrockClient, err := bedrock.NewClient(ctx, region, modelID)
		if err != nil {
			log.Fatal().Err(err).Msg("Unable to create bedrock client")
		}

		loader := ingestion.NewLoader(*cardsPath)
		embedder := embedding.NewBedrockEmbedderWithModel(bedrockClient.Client, os.Getenv("EMBED_MODEL_ID"))
		pipeline := ingestion.NewPipeline(loader, embedder, db)

		if err := pipeline.IngestCards(ctx); err != nil {
			log.Fatal().Err(err).Msg("Ingestion failed")
		}
		log.Info().Msg("Ingestion successful!")

	case *deleteCommand:
		if *cardName == "" {
			log.Fatal().Msg("card-name is required with -delete")
		}
		if err := db.DeleteCardDocuments(ctx, *cardName); err != nil {
			log.Fatal().Err(err).Msg("Failed to delete card documents")
		}

	case *listCommand:
		names, err := db.ListCards(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Unable to fetch cards from DB!")
		}
		for _, name := range names {
			log.Info().Msg(name)
		}

	default:
		log.Fatal().Msg("Unsupported command")
	}
}
