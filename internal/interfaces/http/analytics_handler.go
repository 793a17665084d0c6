package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/minegocio/internal/application/analytics"
)

// AnalyticsHandler rollups de interacción para el dueño del listado.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Stats godoc
// @Summary      Estadísticas de interacción de un listado
// @Description  Ventanas: week (7 días), month (30 días), all (histórico). Solo dueño o main_admin.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del listado"
// @Param        period  query  string  false  "week | month | all"  default(week)
// @Success      200     {object}  dto.StatsResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/listings/{id}/stats [get]
func (h *AnalyticsHandler) Stats(c *fiber.Ctx) error {
	period := c.Query("period", analytics.PeriodWeek)
	out, err := h.uc.Query(c.Context(), CallerFrom(c), c.Params("id"), period)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
