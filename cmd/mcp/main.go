package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/config"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/mcpadapter"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/setup"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	// Load env
	_ = godotenv.Load()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	agentCfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load agent configuration")
		os.Exit(1)
	}

	cfg := setup.LoadConfig()

	deps, err := setup.Wire(ctx, cfg, agentCfg, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}
	defer deps.DB.Close()

	server := createMCPServer(deps)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		logger.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "tarot-agent",
			Version: "1.0.0",
		}, nil,
	)

	// Add Tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_reading",
		Description: "Draw tarot cards for a question and generate a grounded interpretation",
	}, mcpadapter.NewReadingHandler(deps.Service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_card_info",
		Description: "Look up the knowledge base entry for one tarot card by its canonical name",
	}, mcpadapter.NewCardInfoHandler(deps.Service))

	return server
}
