package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/minegocio/internal/application/dto"
	"github.com/tu-usuario/minegocio/internal/application/lifecycle"
	"github.com/tu-usuario/minegocio/internal/application/usecase"
)

// ListingHandler superficie del dueño: alta, listado propio, vista de
// gestión y propuesta de ediciones.
type ListingHandler struct {
	lifecycleUC *lifecycle.UseCase
	listingUC   *usecase.ListingUseCase
}

// NewListingHandler construye el handler.
func NewListingHandler(lifecycleUC *lifecycle.UseCase, listingUC *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{lifecycleUC: lifecycleUC, listingUC: listingUC}
}

// Create godoc
// @Summary      Crear listado
// @Description  El listado nace en pending; si el slug fue tomado entre la verificación y el alta responde 409.
// @Tags         listings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateListingRequest  true  "Datos del listado"
// @Success      201   {object}  dto.ListingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/listings [post]
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateListingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	l, err := h.lifecycleUC.Create(c.Context(), CallerFrom(c), lifecycle.CreateInput{
		DesiredSlug:  in.Slug,
		BusinessName: in.BusinessName,
		Fields:       in.Fields,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.listingUC.ToResponse(l))
}

// ListMine godoc
// @Summary      Mis listados
// @Tags         listings
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListingListResponse
// @Router       /api/listings/mine [get]
func (h *ListingHandler) ListMine(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.listingUC.ListMine(c.Context(), GetUserID(c), page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Vista de gestión de un listado
// @Description  Campos vivos más la edición staged si existe. Solo dueño o main_admin.
// @Tags         listings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del listado"
// @Success      200  {object}  dto.ListingResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/listings/{id} [get]
func (h *ListingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.listingUC.GetManagementView(c.Context(), CallerFrom(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "listado no encontrado"})
	}
	return c.JSON(out)
}

// StageEdit godoc
// @Summary      Proponer una edición
// @Description  El change set queda en revisión; los campos públicos no cambian hasta la aprobación.
// @Tags         listings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del listado"
// @Param        body  body  dto.StageEditRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ListingResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/listings/{id}/edits [post]
func (h *ListingHandler) StageEdit(c *fiber.Ctx) error {
	var in dto.StageEditRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	l, err := h.lifecycleUC.StageEdit(c.Context(), CallerFrom(c), c.Params("id"), in.Changes)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.listingUC.ToResponse(l))
}
