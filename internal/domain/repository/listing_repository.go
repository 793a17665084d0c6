package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/minegocio/internal/domain/entity"
)

// ListingRepository define el puerto de persistencia para Listing.
//
// Todas las transiciones de estado son updates condicionales: la cláusula
// WHERE incluye el estado actual esperado y el booleano devuelto indica si la
// fila coincidió. Así dos moderadores concurrentes no pueden decidir dos
// veces el mismo listado.
type ListingRepository interface {
	// Create inserta el listado en pending. La verificación autoritativa de
	// unicidad del slug ocurre aquí, en el índice único: una violación se
	// traduce a domain.ErrSlugConflict.
	Create(ctx context.Context, l *entity.Listing) error

	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Listing, error)

	// SlugExists consulta la reserva del slug sin importar el estado del
	// listado: un listado rechazado sigue reservando su slug.
	SlugExists(ctx context.Context, slug string) (bool, error)

	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Listing, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Listing, error)
	ListPendingEdits(ctx context.Context, limit, offset int) ([]*entity.Listing, error)

	// SetStatus ejecuta la transición del track de creación
	// (from → to, con motivo opcional en rechazos).
	SetStatus(ctx context.Context, id, from, to, reason string, now time.Time) (bool, error)

	// StageEdit escribe el change set en pending_edit y pasa edit_status a
	// pending, solo si status=approved y edit_status ∈ {none, rejected}.
	// No toca los campos vivos.
	StageEdit(ctx context.Context, id string, changes entity.Fields, now time.Time) (bool, error)

	// MergePendingEdit aplica la edición staged sobre los campos vivos
	// (reemplazo completo por clave), limpia pending_edit y vuelve edit_status
	// a none. Solo si edit_status=pending.
	MergePendingEdit(ctx context.Context, id string, now time.Time) (bool, error)

	// DiscardPendingEdit descarta pending_edit sin tocar los campos vivos.
	// Solo si edit_status=pending.
	DiscardPendingEdit(ctx context.Context, id, reason string, now time.Time) (bool, error)
}
