package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// IdempotencyGuard records which dispatch stages already succeeded for a
// given form checksum, so a manual resubmission after a partial failure does
// not re-send the stage the business already received. The guard is optional:
// a nil guard (or one without a backing client) disables the layer and the
// duplicate-send behaviour of the underlying provider stands.
//
// Redis failures are treated as "not yet delivered" so that the guard can
// never block a dispatch; the worst case is the accepted duplicate.
type IdempotencyGuard struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewIdempotencyGuard constructs a guard backed by Redis.
func NewIdempotencyGuard(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *IdempotencyGuard {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyGuard{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "inquiry_idempotency").Logger(),
	}
}

// Done reports whether the stage has already been delivered for this checksum.
func (g *IdempotencyGuard) Done(ctx context.Context, checksum, stage string) bool {
	if g == nil || g.client == nil {
		return false
	}

	exists, err := g.client.Exists(ctx, g.key(checksum, stage)).Result()
	if err != nil {
		g.logger.Warn().Err(err).Str("stage", stage).Msg("idempotency lookup failed, assuming not delivered")
		return false
	}

	return exists > 0
}

// Mark records a successfully delivered stage.
func (g *IdempotencyGuard) Mark(ctx context.Context, checksum, stage string) {
	if g == nil || g.client == nil {
		return
	}

	if err := g.client.Set(ctx, g.key(checksum, stage), 1, g.ttl).Err(); err != nil {
		g.logger.Warn().Err(err).Str("stage", stage).Msg("failed to record delivered stage")
	}
}

func (g *IdempotencyGuard) key(checksum, stage string) string {
	return fmt.Sprintf("inquiry:delivered:%s:%s", checksum, stage)
}
