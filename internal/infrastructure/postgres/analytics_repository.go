package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/minegocio/internal/domain/entity"
	"github.com/tu-usuario/minegocio/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo contadores diarios de interacción sobre PostgreSQL.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// Increment suma 1 al contador (listing, día, tipo) con un upsert atómico.
// `count = count + 1` se evalúa en el servidor: no hay leer-modificar-escribir
// en el cliente, así que incrementos concurrentes sobre la misma clave nunca
// se pisan (y nunca cuentan doble).
func (r *AnalyticsRepo) Increment(ctx context.Context, listingID, eventType string, day time.Time) error {
	const query = `
		INSERT INTO listing_daily_stats (listing_id, stat_date, event_type, count)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (listing_id, stat_date, event_type)
		DO UPDATE SET count = listing_daily_stats.count + 1`
	if _, err := r.q.Exec(ctx, query, listingID, day, eventType); err != nil {
		return fmt.Errorf("analytics.Increment: %w", err)
	}
	return nil
}

// GetRange devuelve las filas diarias del listado desde `since` (inclusive),
// ordenadas por fecha ascendente para graficar. since == nil trae todo el
// histórico.
func (r *AnalyticsRepo) GetRange(ctx context.Context, listingID string, since *time.Time) ([]entity.DailyStat, error) {
	const query = `
		SELECT listing_id, stat_date, event_type, count
		FROM listing_daily_stats
		WHERE listing_id = $1 AND ($2::date IS NULL OR stat_date >= $2)
		ORDER BY stat_date ASC, event_type ASC`
	rows, err := r.q.Query(ctx, query, listingID, since)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetRange: %w", err)
	}
	defer rows.Close()

	var results []entity.DailyStat
	for rows.Next() {
		var s entity.DailyStat
		if err := rows.Scan(&s.ListingID, &s.Date, &s.EventType, &s.Count); err != nil {
			return nil, fmt.Errorf("analytics.GetRange scan: %w", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}
