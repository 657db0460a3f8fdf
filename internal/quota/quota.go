// Package quota keeps a per-source cooldown flag in Redis after a provider
// reports its daily quota exhausted. The flag is the only thing stored:
// listing data is never cached, so there is nothing to go stale.
package quota

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "source:quota:"

// DefaultCooldown is how long a source sits out after a quota error. Upstream
// quotas reset daily; an hour keeps us probing without hammering.
const DefaultCooldown = time.Hour

type Guard struct {
	rdb      *redis.Client
	cooldown time.Duration
	logger   *slog.Logger
}

func New(addr, password string, db int, cooldown time.Duration, logger *slog.Logger) *Guard {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		rdb:      redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		cooldown: cooldown,
		logger:   logger,
	}
}

func (g *Guard) Ping(ctx context.Context) error {
	return g.rdb.Ping(ctx).Err()
}

// Exhausted reports whether the source is on cooldown. Redis trouble reads as
// "not exhausted": losing the guard must not block aggregation.
func (g *Guard) Exhausted(ctx context.Context, source string) bool {
	n, err := g.rdb.Exists(ctx, keyPrefix+source).Result()
	if err != nil {
		g.logger.Warn("quota lookup failed", "source", source, "err", err)
		return false
	}
	return n == 1
}

func (g *Guard) MarkExhausted(ctx context.Context, source string) {
	if err := g.rdb.Set(ctx, keyPrefix+source, "1", g.cooldown).Err(); err != nil {
		g.logger.Warn("quota mark failed", "source", source, "err", err)
		return
	}
	g.logger.Info("source on quota cooldown", "source", source, "cooldown", g.cooldown)
}
