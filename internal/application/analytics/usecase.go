// Package analytics contiene el agregador de interacciones: muchas escrituras
// pequeñas (un incremento por evento) y rollups consistentes en el lado de
// lectura (semana, mes, histórico).
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/minegocio/internal/application/dto"
	"github.com/tu-usuario/minegocio/internal/application/lifecycle"
	"github.com/tu-usuario/minegocio/internal/domain"
	"github.com/tu-usuario/minegocio/internal/domain/entity"
	"github.com/tu-usuario/minegocio/internal/domain/repository"
)

// Ventanas de consulta.
const (
	PeriodWeek  = "week"  // últimos 7 días calendario
	PeriodMonth = "month" // últimos 30 días calendario
	PeriodAll   = "all"   // histórico completo
)

const (
	cacheTTL      = time.Minute
	ratePrecision = 4
)

// UseCase registra interacciones y responde rollups por ventana.
type UseCase struct {
	stats    repository.AnalyticsRepository
	listings repository.ListingRepository
	cache    StatsCache // opcional; nil = sin cache
}

// New construye el caso de uso. cache puede ser nil.
func New(stats repository.AnalyticsRepository, listings repository.ListingRepository, cache StatsCache) *UseCase {
	return &UseCase{stats: stats, listings: listings, cache: cache}
}

// Record incrementa en 1 el contador (listado, día, tipo). El incremento es
// una sola operación atómica en el almacén: bajo concurrencia extrema un
// ligero sub-conteo sería tolerable, un doble conteo no.
func (uc *UseCase) Record(ctx context.Context, listingID, eventType string, when time.Time) error {
	if !entity.IsValidEventType(eventType) {
		return domain.ErrInvalidInput
	}
	day := truncateDay(when)
	if err := uc.stats.Increment(ctx, listingID, eventType, day); err != nil {
		return fmt.Errorf("incrementar contador: %w", err)
	}
	return nil
}

// RecordForSlug registra una interacción llegada del sitio público, que solo
// conoce el subdominio. Solo cuentan los sitios publicados: un listado
// pendiente o rechazado no acumula estadísticas.
func (uc *UseCase) RecordForSlug(ctx context.Context, slugStr, eventType string, when time.Time) error {
	if !entity.IsValidEventType(eventType) {
		return domain.ErrInvalidInput
	}
	l, err := uc.listings.GetBySlug(ctx, slugStr)
	if err != nil {
		return err
	}
	if l == nil || !l.IsPubliclyVisible() {
		return domain.ErrNotFound
	}
	return uc.Record(ctx, l.ID, eventType, when)
}

// Query responde el rollup del listado en la ventana pedida. Autoriza dueño o
// main_admin. Lecturas eventualmente consistentes: puede servirse desde cache
// (TTL de un minuto) sin observar el último incremento.
func (uc *UseCase) Query(ctx context.Context, caller lifecycle.Caller, listingID, period string) (*dto.StatsResponse, error) {
	since, err := periodStart(period)
	if err != nil {
		return nil, err
	}

	l, err := uc.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if l.OwnerID != caller.ID && !caller.IsMainAdmin() {
		return nil, domain.ErrForbidden
	}

	cacheKey := fmt.Sprintf("stats:%s:%s", listingID, period)
	if uc.cache != nil {
		if raw, ok := uc.cache.Get(ctx, cacheKey); ok {
			var cached dto.StatsResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			// Entrada corrupta: se ignora y se recalcula.
		}
	}

	rows, err := uc.stats.GetRange(ctx, listingID, since)
	if err != nil {
		return nil, fmt.Errorf("leer contadores: %w", err)
	}
	resp := aggregate(listingID, period, rows)

	if uc.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			uc.cache.Set(ctx, cacheKey, raw, cacheTTL)
		}
	}
	return resp, nil
}

// aggregate construye totales por tipo, total de interacciones (todo menos
// visitor), desglose diario ascendente y tasa de engagement.
func aggregate(listingID, period string, rows []entity.DailyStat) *dto.StatsResponse {
	totals := make(map[string]int64, len(entity.EventTypes))
	for _, t := range entity.EventTypes {
		totals[t] = 0
	}

	breakdown := make([]dto.DailyBreakdownDTO, 0)
	for _, row := range rows {
		totals[row.EventType] += row.Count
		date := row.Date.Format("2006-01-02")
		// Las filas llegan ordenadas por fecha ascendente; se agrupan por día.
		if n := len(breakdown); n == 0 || breakdown[n-1].Date != date {
			breakdown = append(breakdown, dto.DailyBreakdownDTO{Date: date, Counts: map[string]int64{}})
		}
		breakdown[len(breakdown)-1].Counts[row.EventType] += row.Count
	}

	visitors := totals[entity.EventVisitor]
	var interactions int64
	for t, n := range totals {
		if t != entity.EventVisitor {
			interactions += n
		}
	}

	// Tasa de engagement definida como 0 cuando no hubo visitas: nunca se
	// divide por cero.
	rate := decimal.Zero
	if visitors > 0 {
		rate = decimal.NewFromInt(interactions).DivRound(decimal.NewFromInt(visitors), ratePrecision)
	}

	return &dto.StatsResponse{
		ListingID:         listingID,
		Period:            period,
		Totals:            totals,
		Visitors:          visitors,
		TotalInteractions: interactions,
		EngagementRate:    rate,
		Breakdown:         breakdown,
	}
}

// periodStart devuelve el inicio de la ventana (nil = histórico completo).
// La ventana es de días calendario e incluye el día de hoy: week cubre hoy y
// los 6 días anteriores.
func periodStart(period string) (*time.Time, error) {
	today := truncateDay(time.Now())
	switch period {
	case PeriodWeek:
		start := today.AddDate(0, 0, -6)
		return &start, nil
	case PeriodMonth:
		start := today.AddDate(0, 0, -29)
		return &start, nil
	case PeriodAll:
		return nil, nil
	default:
		return nil, domain.ErrInvalidInput
	}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
