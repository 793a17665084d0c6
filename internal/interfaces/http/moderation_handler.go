package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/minegocio/internal/application/dto"
	"github.com/tu-usuario/minegocio/internal/application/lifecycle"
	"github.com/tu-usuario/minegocio/internal/application/usecase"
)

// ModerationHandler superficie del moderador (main_admin): colas pendientes y
// decisiones de ambos tracks. El RBAC lo aplica RequireRole en el router; el
// caso de uso vuelve a verificar el rol del Caller de todas formas.
type ModerationHandler struct {
	lifecycleUC *lifecycle.UseCase
	listingUC   *usecase.ListingUseCase
}

// NewModerationHandler construye el handler.
func NewModerationHandler(lifecycleUC *lifecycle.UseCase, listingUC *usecase.ListingUseCase) *ModerationHandler {
	return &ModerationHandler{lifecycleUC: lifecycleUC, listingUC: listingUC}
}

// PendingListings godoc
// @Summary      Cola de listados pendientes de publicación
// @Tags         moderation
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListingListResponse
// @Router       /api/moderation/listings [get]
func (h *ModerationHandler) PendingListings(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.listingUC.ListPendingCreations(c.Context(), page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// PendingEdits godoc
// @Summary      Cola de ediciones pendientes de revisión
// @Tags         moderation
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListingListResponse
// @Router       /api/moderation/edits [get]
func (h *ModerationHandler) PendingEdits(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.listingUC.ListPendingEdits(c.Context(), page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar un listado pendiente
// @Description  Publica el listado y, si el dueño sigue con rol normal, lo promueve a content_admin en la misma transacción.
// @Tags         moderation
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del listado"
// @Success      200  {object}  dto.ListingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/moderation/listings/{id}/approve [post]
func (h *ModerationHandler) Approve(c *fiber.Ctx) error {
	l, err := h.lifecycleUC.Approve(c.Context(), CallerFrom(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.listingUC.ToResponse(l))
}

// Reject godoc
// @Summary      Rechazar un listado pendiente
// @Description  Terminal: el slug queda reservado y el dueño tendría que crear un listado nuevo.
// @Tags         moderation
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true   "ID del listado"
// @Param        body  body  dto.DecisionRequest  false  "Motivo"
// @Success      200   {object}  dto.ListingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/moderation/listings/{id}/reject [post]
func (h *ModerationHandler) Reject(c *fiber.Ctx) error {
	var in dto.DecisionRequest
	_ = c.BodyParser(&in) // cuerpo opcional
	l, err := h.lifecycleUC.Reject(c.Context(), CallerFrom(c), c.Params("id"), in.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.listingUC.ToResponse(l))
}

// ApproveEdit godoc
// @Summary      Aprobar la edición staged de un listado
// @Tags         moderation
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del listado"
// @Success      200  {object}  dto.ListingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/moderation/edits/{id}/approve [post]
func (h *ModerationHandler) ApproveEdit(c *fiber.Ctx) error {
	l, err := h.lifecycleUC.ApproveEdit(c.Context(), CallerFrom(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.listingUC.ToResponse(l))
}

// RejectEdit godoc
// @Summary      Rechazar la edición staged de un listado
// @Description  Descarta el change set; el listado publicado queda intacto.
// @Tags         moderation
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true   "ID del listado"
// @Param        body  body  dto.DecisionRequest  false  "Motivo"
// @Success      200   {object}  dto.ListingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/moderation/edits/{id}/reject [post]
func (h *ModerationHandler) RejectEdit(c *fiber.Ctx) error {
	var in dto.DecisionRequest
	_ = c.BodyParser(&in) // cuerpo opcional
	l, err := h.lifecycleUC.RejectEdit(c.Context(), CallerFrom(c), c.Params("id"), in.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.listingUC.ToResponse(l))
}
