package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/minegocio/internal/domain/entity"
)

// AnalyticsRepository define el puerto de contadores de interacción.
type AnalyticsRepository interface {
	// Increment suma 1 al contador (listing, día, tipo) como una sola
	// operación atómica en el almacén (upsert con count = count + 1), nunca
	// leer-modificar-escribir en el cliente.
	Increment(ctx context.Context, listingID, eventType string, day time.Time) error

	// GetRange devuelve las filas diarias del listado desde `since`
	// (inclusive), ordenadas por fecha ascendente. since == nil trae el
	// histórico completo.
	GetRange(ctx context.Context, listingID string, since *time.Time) ([]entity.DailyStat, error)
}
