package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const DefaultStream = "reading-events"

const emitTimeout = 2 * time.Second

// RedisEmitter publishes session events to a Redis stream. Failed publishes
// are logged and dropped so a Redis outage cannot block readings.
type RedisEmitter struct {
	client *redis.Client
	stream string
	logger *zerolog.Logger
}

func NewRedisEmitter(client *redis.Client, stream string, logger *zerolog.Logger) *RedisEmitter {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisEmitter{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (e *RedisEmitter) SessionStart(event SessionStartEvent) string {
	traceID := uuid.New().String()
	e.publish("session_start", traceID, event)
	return traceID
}

func (e *RedisEmitter) SessionEnd(traceID string, event SessionEndEvent) {
	e.publish("session_end", traceID, event)
}

func (e *RedisEmitter) Error(traceID string, event ErrorEvent) {
	e.publish("error", traceID, event)
}

// publish sends the event from its own goroutine so a slow or hung Redis
// never delays the reading; the timeout bounds how long the goroutine lives.
func (e *RedisEmitter) publish(eventType string, traceID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		e.logger.Warn().Err(err).Str("event", eventType).Msg("failed to serialize telemetry event")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()

		err := e.client.XAdd(ctx, &redis.XAddArgs{
			Stream: e.stream,
			Values: map[string]any{
				"event":    eventType,
				"trace_id": traceID,
				"payload":  string(data),
			},
		}).Err()
		if err != nil {
			e.logger.Warn().Err(err).Str("event", eventType).Str("trace_id", traceID).Msg("failed to publish telemetry event")
		}
	}()
}

// NopEmitter drops all events. Used when Redis is not configured.
type NopEmitter struct{}

func (NopEmitter) SessionStart(SessionStartEvent) string {
	return uuid.New().String()
}

func (NopEmitter) SessionEnd(string, SessionEndEvent) {}

func (NopEmitter) Error(string, ErrorEvent) {}
