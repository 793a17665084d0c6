// Package lifecycle implementa la máquina de estados de publicación de un
// listado: el track de creación (pending → approved|rejected) y el track de
// edición sobre listados ya publicados (none → pending → none). Todas las
// transiciones se aplican como updates condicionales sobre el estado actual,
// de modo que dos moderadores concurrentes no pueden decidir dos veces.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/minegocio/internal/domain"
	"github.com/tu-usuario/minegocio/internal/domain/entity"
	"github.com/tu-usuario/minegocio/internal/domain/repository"
	"github.com/tu-usuario/minegocio/pkg/slug"
)

// Caller es la identidad explícita del invocador. El núcleo nunca lee
// identidad ambiente/global: cada operación recibe quién la pide y autoriza
// comparando dueño o rol.
type Caller struct {
	ID   string
	Role string
}

// IsMainAdmin indica si el caller puede moderar (aprobar/rechazar).
func (c Caller) IsMainAdmin() bool { return c.Role == entity.RoleMainAdmin }

// UseCase orquesta las transiciones de ciclo de vida del listado.
type UseCase struct {
	txRunner TxRunner
	listings repository.ListingRepository
	users    repository.UserRepository
	notifier Notifier // opcional; nil = sin notificaciones
}

// New construye el caso de uso. notifier puede ser nil.
func New(txRunner TxRunner, listings repository.ListingRepository, users repository.UserRepository, notifier Notifier) *UseCase {
	return &UseCase{txRunner: txRunner, listings: listings, users: users, notifier: notifier}
}

// CreateInput entrada para el alta de un listado. Fields es opaco al núcleo.
type CreateInput struct {
	DesiredSlug  string
	BusinessName string
	Fields       entity.Fields
}

// Create da de alta un listado en pending. La disponibilidad del slug se
// re-valida de forma atómica dentro del propio insert: el índice único decide,
// y si el slug fue tomado entre la verificación informativa y este alta, la
// operación falla con domain.ErrSlugConflict y el cliente debe re-verificar.
func (uc *UseCase) Create(ctx context.Context, caller Caller, in CreateInput) (*entity.Listing, error) {
	if caller.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	normalized := slug.Make(in.DesiredSlug)
	if !slug.IsValid(normalized) {
		return nil, domain.ErrInvalidInput
	}
	if in.BusinessName == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	l := &entity.Listing{
		ID:           uuid.New().String(),
		OwnerID:      caller.ID,
		Slug:         normalized,
		BusinessName: in.BusinessName,
		Fields:       in.Fields.Clone(),
		Status:       entity.ListingStatusPending,
		EditStatus:   entity.EditStatusNone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if l.Fields == nil {
		l.Fields = entity.Fields{}
	}
	if err := uc.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Approve publica un listado pendiente. Efectos, en una sola transacción:
// status pasa a approved y, si el dueño sigue con rol normal, se le promueve
// a content_admin. Aprobar dos veces no es un éxito silencioso: la segunda
// llamada devuelve domain.ErrInvalidTransition para que el moderador vea que
// el listado ya estaba decidido.
func (uc *UseCase) Approve(ctx context.Context, caller Caller, listingID string) (*entity.Listing, error) {
	l, err := uc.requireModerated(ctx, caller, listingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	err = uc.txRunner.Run(ctx, func(listings repository.ListingRepository, users repository.UserRepository) error {
		ok, err := listings.SetStatus(ctx, l.ID, entity.ListingStatusPending, entity.ListingStatusApproved, "", now)
		if err != nil {
			return fmt.Errorf("aprobar listado: %w", err)
		}
		if !ok {
			return domain.ErrInvalidTransition
		}
		// Promoción como efecto exclusivo de approve. El update es condicional
		// al rol normal: si el dueño ya es content_admin (u otro rol) no
		// cambia nada, sin error.
		if _, err := users.PromoteRole(ctx, l.OwnerID, entity.RoleNormal, entity.RoleContentAdmin); err != nil {
			return fmt.Errorf("promover dueño: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Status = entity.ListingStatusApproved
	l.UpdatedAt = now
	if uc.notifier != nil {
		uc.notifier.ListingApproved(ctx, l)
	}
	return l, nil
}

// Reject rechaza un listado pendiente. Terminal: no hay más transiciones en
// el track de creación y el slug queda reservado; el dueño tendría que crear
// un listado nuevo.
func (uc *UseCase) Reject(ctx context.Context, caller Caller, listingID, reason string) (*entity.Listing, error) {
	l, err := uc.requireModerated(ctx, caller, listingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ok, err := uc.listings.SetStatus(ctx, l.ID, entity.ListingStatusPending, entity.ListingStatusRejected, reason, now)
	if err != nil {
		return nil, fmt.Errorf("rechazar listado: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidTransition
	}

	l.Status = entity.ListingStatusRejected
	l.RejectReason = reason
	l.UpdatedAt = now
	if uc.notifier != nil {
		uc.notifier.ListingRejected(ctx, l, reason)
	}
	return l, nil
}

// StageEdit propone un change set sobre un listado publicado. Los campos
// vivos no se tocan: el cambio queda en pending_edit hasta la decisión del
// moderador. Solo puede haber una edición en vuelo por listado; tras un
// rechazo se puede proponer una nueva.
func (uc *UseCase) StageEdit(ctx context.Context, caller Caller, listingID string, changes entity.Fields) (*entity.Listing, error) {
	if caller.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(changes) == 0 {
		return nil, domain.ErrInvalidInput
	}
	l, err := uc.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if l.OwnerID != caller.ID {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	ok, err := uc.listings.StageEdit(ctx, l.ID, changes, now)
	if err != nil {
		return nil, fmt.Errorf("proponer edición: %w", err)
	}
	if !ok {
		return nil, uc.stageFailure(ctx, l.ID)
	}

	l.EditStatus = entity.EditStatusPending
	l.PendingEdit = changes.Clone()
	l.UpdatedAt = now
	return l, nil
}

// stageFailure distingue por qué falló el update condicional de StageEdit:
// otra edición ya en revisión contra un listado que no está publicado.
func (uc *UseCase) stageFailure(ctx context.Context, listingID string) error {
	current, err := uc.listings.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if current != nil && current.EditStatus == entity.EditStatusPending {
		return domain.ErrEditAlreadyPending
	}
	return domain.ErrInvalidTransition
}

// ApproveEdit aplica la edición staged: cada clave presente en pending_edit
// reemplaza por completo el campo vivo correspondiente (sin merge profundo de
// estructuras anidadas), pending_edit se limpia y edit_status vuelve a none.
// Todo en una sola sentencia condicional.
func (uc *UseCase) ApproveEdit(ctx context.Context, caller Caller, listingID string) (*entity.Listing, error) {
	l, err := uc.requireModerated(ctx, caller, listingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ok, err := uc.listings.MergePendingEdit(ctx, l.ID, now)
	if err != nil {
		return nil, fmt.Errorf("aprobar edición: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidTransition
	}

	merged, err := uc.listings.GetByID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	if merged == nil {
		return nil, domain.ErrNotFound
	}
	if uc.notifier != nil {
		uc.notifier.EditApproved(ctx, merged)
	}
	return merged, nil
}

// RejectEdit descarta la edición staged. El listado vivo queda exactamente
// igual que antes de StageEdit: esa es la garantía que distingue el track de
// edición del de creación.
func (uc *UseCase) RejectEdit(ctx context.Context, caller Caller, listingID, reason string) (*entity.Listing, error) {
	l, err := uc.requireModerated(ctx, caller, listingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ok, err := uc.listings.DiscardPendingEdit(ctx, l.ID, reason, now)
	if err != nil {
		return nil, fmt.Errorf("rechazar edición: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidTransition
	}

	l.EditStatus = entity.EditStatusNone
	l.PendingEdit = nil
	l.UpdatedAt = now
	if uc.notifier != nil {
		uc.notifier.EditRejected(ctx, l, reason)
	}
	return l, nil
}

// requireModerated autoriza una acción de moderación y carga el listado.
func (uc *UseCase) requireModerated(ctx context.Context, caller Caller, listingID string) (*entity.Listing, error) {
	if caller.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if !caller.IsMainAdmin() {
		return nil, domain.ErrForbidden
	}
	l, err := uc.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return l, nil
}
