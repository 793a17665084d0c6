package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/minegocio/internal/domain"
	"github.com/tu-usuario/minegocio/internal/domain/entity"
	"github.com/tu-usuario/minegocio/internal/domain/repository"
)

var _ repository.ListingRepository = (*ListingRepo)(nil)

// ListingRepo implementación del puerto ListingRepository sobre PostgreSQL.
//
// El slug tiene índice único sin filtro por estado: un listado rechazado
// sigue reservando el suyo. Las transiciones de estado son UPDATEs con el
// estado esperado en el WHERE; el caller decide con RowsAffected.
type ListingRepo struct {
	q Querier
}

// NewListingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewListingRepository(q Querier) *ListingRepo {
	return &ListingRepo{q: q}
}

const listingColumns = `
	id, owner_id, slug, business_name, fields, status, edit_status,
	pending_edit, reject_reason, created_at, updated_at`

// Create inserta el listado. La unicidad del slug la decide el índice único
// en la misma sentencia: una violación se traduce a domain.ErrSlugConflict,
// cerrando la ventana entre la verificación informativa y el alta.
func (r *ListingRepo) Create(ctx context.Context, l *entity.Listing) error {
	query := `
		INSERT INTO listings (id, owner_id, slug, business_name, fields, status, edit_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.OwnerID, l.Slug, l.BusinessName, l.Fields, l.Status, l.EditStatus,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

// GetByID obtiene un listado por ID.
func (r *ListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	return r.scanOne(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
}

// GetBySlug obtiene un listado por slug (cualquier estado; la visibilidad
// pública la decide la capa de aplicación).
func (r *ListingRepo) GetBySlug(ctx context.Context, slug string) (*entity.Listing, error) {
	return r.scanOne(ctx, `SELECT `+listingColumns+` FROM listings WHERE slug = $1`, slug)
}

// SlugExists consulta la reserva del slug sin importar el estado.
func (r *ListingRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM listings WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return exists, nil
}

// ListByOwner lista los listados de un dueño, más recientes primero.
func (r *ListingRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Listing, error) {
	query := `
		SELECT ` + listingColumns + ` FROM listings
		WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(ctx, query, ownerID, limit, offset)
}

// ListByStatus cola de moderación del track de creación: los pendientes más
// antiguos primero (orden de llegada).
func (r *ListingRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Listing, error) {
	query := `
		SELECT ` + listingColumns + ` FROM listings
		WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	return r.scanMany(ctx, query, status, limit, offset)
}

// ListPendingEdits cola de moderación del track de edición.
func (r *ListingRepo) ListPendingEdits(ctx context.Context, limit, offset int) ([]*entity.Listing, error) {
	query := `
		SELECT ` + listingColumns + ` FROM listings
		WHERE edit_status = 'pending' ORDER BY updated_at ASC LIMIT $1 OFFSET $2`
	return r.scanMany(ctx, query, limit, offset)
}

// SetStatus transición condicional del track de creación.
func (r *ListingRepo) SetStatus(ctx context.Context, id, from, to, reason string, now time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE listings
		SET status = $3, reject_reason = NULLIF($4, ''), updated_at = $5
		WHERE id = $1 AND status = $2`,
		id, from, to, reason, now,
	)
	if err != nil {
		return false, fmt.Errorf("set status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// StageEdit guarda el change set en pending_edit sin tocar los campos vivos.
// Condicional: solo sobre un listado publicado sin edición ya en revisión.
func (r *ListingRepo) StageEdit(ctx context.Context, id string, changes entity.Fields, now time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE listings
		SET pending_edit = $2, edit_status = 'pending', reject_reason = NULL, updated_at = $3
		WHERE id = $1 AND status = 'approved' AND edit_status IN ('none', 'rejected')`,
		id, changes, now,
	)
	if err != nil {
		return false, fmt.Errorf("stage edit: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MergePendingEdit aplica la edición staged en una sola sentencia: cada clave
// de pending_edit reemplaza por completo el campo vivo (el operador || de
// jsonb hace exactamente ese reemplazo por clave, no un merge profundo).
// business_name es la única clave con columna propia y se pela antes del fold.
func (r *ListingRepo) MergePendingEdit(ctx context.Context, id string, now time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE listings
		SET business_name = COALESCE(pending_edit->>'business_name', business_name),
		    fields       = fields || (pending_edit - 'business_name'),
		    pending_edit = NULL,
		    edit_status  = 'none',
		    updated_at   = $2
		WHERE id = $1 AND edit_status = 'pending'`,
		id, now,
	)
	if err != nil {
		return false, fmt.Errorf("merge pending edit: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DiscardPendingEdit descarta la edición staged dejando intactos los campos vivos.
func (r *ListingRepo) DiscardPendingEdit(ctx context.Context, id, reason string, now time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE listings
		SET pending_edit = NULL, edit_status = 'none', reject_reason = NULLIF($2, ''), updated_at = $3
		WHERE id = $1 AND edit_status = 'pending'`,
		id, reason, now,
	)
	if err != nil {
		return false, fmt.Errorf("discard pending edit: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ListingRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Listing, error) {
	l, err := scanListing(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

func (r *ListingRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.Listing, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanListing(row pgx.Row) (*entity.Listing, error) {
	var l entity.Listing
	var reason *string
	err := row.Scan(
		&l.ID, &l.OwnerID, &l.Slug, &l.BusinessName, &l.Fields, &l.Status, &l.EditStatus,
		&l.PendingEdit, &reason, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reason != nil {
		l.RejectReason = *reason
	}
	return &l, nil
}
