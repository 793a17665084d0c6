package analytics

import (
	"context"
	"time"
)

// StatsCache cache opcional de lecturas de rollups. Las estadísticas admiten
// consistencia eventual, así que servir una respuesta de hasta un minuto de
// antigüedad es aceptable y ahorra la agregación en cada carga del panel.
// Las implementaciones deben ser best-effort: un fallo del cache nunca
// interrumpe la consulta.
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
