package usecase

import (
	"context"

	"github.com/tu-usuario/minegocio/internal/application/dto"
	"github.com/tu-usuario/minegocio/internal/application/lifecycle"
	"github.com/tu-usuario/minegocio/internal/domain"
	"github.com/tu-usuario/minegocio/internal/domain/entity"
	"github.com/tu-usuario/minegocio/internal/domain/repository"
	"github.com/tu-usuario/minegocio/pkg/config"
)

// ListingUseCase lecturas de listados: sitio público, vista de gestión del
// dueño y colas de moderación. La disciplina de lectura es fija: la ruta
// pública sirve únicamente los campos aprobados (su DTO ni siquiera tiene
// campos de edición staged), la vista de gestión muestra además la edición
// en revisión si existe.
type ListingUseCase struct {
	listings repository.ListingRepository
	platform config.PlatformConfig
}

// NewListingUseCase construye el caso de uso.
func NewListingUseCase(listings repository.ListingRepository, platform config.PlatformConfig) *ListingUseCase {
	return &ListingUseCase{listings: listings, platform: platform}
}

// GetPublicBySlug devuelve el contenido público del sitio. Solo listados
// aprobados; una edición pendiente no cambia nada en esta respuesta.
// Devuelve nil (sin error) si el slug no corresponde a un sitio publicado.
func (uc *ListingUseCase) GetPublicBySlug(ctx context.Context, slugStr string) (*dto.PublicSiteResponse, error) {
	l, err := uc.listings.GetBySlug(ctx, slugStr)
	if err != nil {
		return nil, err
	}
	if l == nil || !l.IsPubliclyVisible() {
		return nil, nil
	}
	return &dto.PublicSiteResponse{
		Slug:         l.Slug,
		SiteURL:      uc.platform.SiteURL(l.Slug),
		BusinessName: l.BusinessName,
		Fields:       l.Fields,
	}, nil
}

// GetManagementView devuelve la vista completa para el dueño o un moderador:
// campos vivos más, si existe, la edición staged esperando revisión.
func (uc *ListingUseCase) GetManagementView(ctx context.Context, caller lifecycle.Caller, id string) (*dto.ListingResponse, error) {
	l, err := uc.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, nil
	}
	if l.OwnerID != caller.ID && !caller.IsMainAdmin() {
		return nil, domain.ErrForbidden
	}
	resp := uc.ToResponse(l)
	return &resp, nil
}

// ListMine lista los listados del dueño autenticado, con edición staged
// incluida para que vea qué está esperando moderación.
func (uc *ListingUseCase) ListMine(ctx context.Context, ownerID string, page dto.PageRequest) (*dto.ListingListResponse, error) {
	page.DefaultPage()
	items, err := uc.listings.ListByOwner(ctx, ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(items, page), nil
}

// ListPendingCreations cola de moderación del track de creación.
func (uc *ListingUseCase) ListPendingCreations(ctx context.Context, page dto.PageRequest) (*dto.ListingListResponse, error) {
	page.DefaultPage()
	items, err := uc.listings.ListByStatus(ctx, entity.ListingStatusPending, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(items, page), nil
}

// ListPendingEdits cola de moderación del track de edición.
func (uc *ListingUseCase) ListPendingEdits(ctx context.Context, page dto.PageRequest) (*dto.ListingListResponse, error) {
	page.DefaultPage()
	items, err := uc.listings.ListPendingEdits(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(items, page), nil
}

// ToResponse mapea la entidad a la vista de gestión (incluye staged edit).
func (uc *ListingUseCase) ToResponse(l *entity.Listing) dto.ListingResponse {
	return dto.ListingResponse{
		ID:           l.ID,
		OwnerID:      l.OwnerID,
		Slug:         l.Slug,
		SiteURL:      uc.platform.SiteURL(l.Slug),
		BusinessName: l.BusinessName,
		Fields:       l.Fields,
		Status:       l.Status,
		EditStatus:   l.EditStatus,
		PendingEdit:  l.PendingEdit,
		RejectReason: l.RejectReason,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func (uc *ListingUseCase) toListResponse(items []*entity.Listing, page dto.PageRequest) *dto.ListingListResponse {
	out := make([]dto.ListingResponse, 0, len(items))
	for _, l := range items {
		out = append(out, uc.ToResponse(l))
	}
	return &dto.ListingListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
