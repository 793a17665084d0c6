package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/minegocio/internal/application/dto"
	"github.com/tu-usuario/minegocio/internal/application/usecase"
)

// SlugHandler verificación informativa de disponibilidad de slugs.
type SlugHandler struct {
	uc *usecase.SlugUseCase
}

// NewSlugHandler construye el handler.
func NewSlugHandler(uc *usecase.SlugUseCase) *SlugHandler {
	return &SlugHandler{uc: uc}
}

// Check godoc
// @Summary      Verificar disponibilidad de un slug
// @Description  Respuesta informativa: la verificación autoritativa se repite al crear el listado.
// @Tags         slugs
// @Security     Bearer
// @Produce      json
// @Param        slug  query  string  true  "Slug o nombre del negocio"
// @Success      200   {object}  dto.SlugCheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/slugs/check [get]
func (h *SlugHandler) Check(c *fiber.Ctx) error {
	candidate := c.Query("slug")
	if candidate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "slug es requerido"})
	}
	out, err := h.uc.CheckAvailability(c.Context(), candidate)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
