package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/minegocio/internal/application/analytics"
	"github.com/tu-usuario/minegocio/internal/application/dto"
	"github.com/tu-usuario/minegocio/internal/application/usecase"
)

// PublicHandler superficie sin autenticación: contenido del sitio publicado e
// ingesta de interacciones. Sirve exclusivamente los campos aprobados; una
// edición en revisión es invisible aquí.
type PublicHandler struct {
	listingUC   *usecase.ListingUseCase
	analyticsUC *analytics.UseCase
}

// NewPublicHandler construye el handler.
func NewPublicHandler(listingUC *usecase.ListingUseCase, analyticsUC *analytics.UseCase) *PublicHandler {
	return &PublicHandler{listingUC: listingUC, analyticsUC: analyticsUC}
}

// GetSite godoc
// @Summary      Contenido público de un sitio
// @Tags         public
// @Produce      json
// @Param        slug  path  string  true  "Slug del negocio"
// @Success      200   {object}  dto.PublicSiteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/public/sites/{slug} [get]
func (h *PublicHandler) GetSite(c *fiber.Ctx) error {
	out, err := h.listingUC.GetPublicBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sitio no encontrado"})
	}
	return c.JSON(out)
}

// RecordEvent godoc
// @Summary      Registrar una interacción del sitio público
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        slug  path  string                  true  "Slug del negocio"
// @Param        body  body  dto.RecordEventRequest  true  "Tipo de evento"
// @Success      202   "Aceptado"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/public/sites/{slug}/events [post]
func (h *PublicHandler) RecordEvent(c *fiber.Ctx) error {
	var in dto.RecordEventRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.analyticsUC.RecordForSlug(c.Context(), c.Params("slug"), in.Type, time.Now()); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}
