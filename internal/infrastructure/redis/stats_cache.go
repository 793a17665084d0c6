// Package redis contiene adaptadores sobre Redis. Hoy solo el cache de
// lecturas de analítica; la plataforma funciona igual sin Redis configurado.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/minegocio/internal/application/analytics"
	"github.com/tu-usuario/minegocio/pkg/config"
	"github.com/tu-usuario/minegocio/pkg/logger"
)

var _ analytics.StatsCache = (*StatsCache)(nil)

// StatsCache implementación del puerto analytics.StatsCache sobre Redis.
// Best-effort: cualquier error de Redis se registra y se trata como cache
// miss; la fuente de verdad sigue siendo PostgreSQL.
type StatsCache struct {
	client *redis.Client
	log    *logger.Logger
}

// NewStatsCache conecta el cliente y verifica la conexión.
func NewStatsCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*StatsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &StatsCache{client: client, log: log}, nil
}

// Get devuelve el valor cacheado y si hubo acierto.
func (c *StatsCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache de estadísticas: fallo en Get")
		}
		return nil, false
	}
	return raw, true
}

// Set guarda el valor con TTL. Los errores solo se registran.
func (c *StatsCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache de estadísticas: fallo en Set")
	}
}

// Close cierra el cliente subyacente.
func (c *StatsCache) Close() error {
	return c.client.Close()
}
