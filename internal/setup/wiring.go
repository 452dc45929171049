package setup

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/config"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/database"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/deck"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/embedding"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/generation"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/guardrails"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/knowledge"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/llm/bedrock"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/reading"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/redis"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/stats"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/telemetry"
)

type Config struct {
	AWSRegion       string
	ClaudeModelID   string
	EmbedModelID    string
	CardsAssetsPath string
	RedisAddr       string
	RedisPassword   string
	TelemetryStream string

	DB database.Config
}

type Dependencies struct {
	Service  *reading.Service
	DB       *database.DB
	Redis    *goredis.Client
	Embedder *embedding.BedrockEmbedder
	Logger   *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:   getEnv("CLAUDE_MODEL_ID", "anthropic.claude-3-5-sonnet-20240620-v1:0"),
		EmbedModelID:    getEnv("EMBED_MODEL_ID", embedding.DefaultModelID),
		CardsAssetsPath: getEnv("CARDS_ASSETS_PATH", "app/static/images/cards"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		TelemetryStream: getEnv("TELEMETRY_STREAM", telemetry.DefaultStream),
		DB: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Database: getEnv("DB_NAME", "tarot"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}
}

// Wire builds the full reading service. Redis is optional: when it is not
// configured or unreachable, telemetry falls back to a no-op emitter and
// rate limiting to the in-memory limiter.
func Wire(ctx context.Context, cfg *Config, agentCfg *config.Config, logger *zerolog.Logger) (*Dependencies, error) {
	bedrockClient, err := bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
	}

	db, err := database.NewWithBackoff(ctx, cfg.DB, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	embedder := embedding.NewBedrockEmbedderWithModel(bedrockClient.Client, cfg.EmbedModelID)
	store := knowledge.NewPostgresStore(db, embedder)

	aggregator := stats.NewAggregator()

	var (
		redisClient *goredis.Client
		emitter     telemetry.Emitter = telemetry.NopEmitter{}
		rateLimiter guardrails.RateLimiter
	)
	if cfg.RedisAddr != "" {
		redisClient, err = redis.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 3)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, using in-memory fallbacks")
			redisClient = nil
		}
	}
	if redisClient != nil {
		emitter = telemetry.NewRedisEmitter(redisClient, cfg.TelemetryStream, logger)
		rateLimiter = guardrails.NewRedisFixedWindowLimiter(redisClient, agentCfg.Guardrails.RateLimit, time.Minute, logger)
	} else {
		rateLimiter = guardrails.NewFixedWindowLimiter(agentCfg.Guardrails.RateLimit, time.Minute)
	}

	drawEngine := deck.NewDrawEngine(
		deck.New(),
		deck.NewImageResolver(cfg.CardsAssetsPath),
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	assembler := reading.NewContextAssembler(store, drawEngine, logger)
	invoker := generation.NewInvoker(bedrockClient, cfg.ClaudeModelID, agentCfg.Pricing, logger)

	service := reading.NewService(
		guardrails.NewInputGuard(agentCfg.Guardrails.MaxQuestionLength, agentCfg.Guardrails.ForbiddenTerms, aggregator, logger),
		guardrails.NewContentPolicyGuard(logger),
		rateLimiter,
		guardrails.NewOutputGuardWithLimits(agentCfg.Guardrails.MaxResponseLength, agentCfg.Guardrails.MinResponseLength, logger),
		drawEngine,
		assembler,
		invoker,
		store,
		aggregator,
		emitter,
		logger,
	)

	return &Dependencies{
		Service:  service,
		DB:       db,
		Redis:    redisClient,
		Embedder: embedder,
		Logger:   logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}
