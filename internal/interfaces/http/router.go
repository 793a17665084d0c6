package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/minegocio/internal/application/analytics"
	"github.com/tu-usuario/minegocio/internal/application/auth"
	"github.com/tu-usuario/minegocio/internal/application/lifecycle"
	"github.com/tu-usuario/minegocio/internal/application/usecase"
	"github.com/tu-usuario/minegocio/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	SlugUC      *usecase.SlugUseCase
	ListingUC   *usecase.ListingUseCase
	LifecycleUC *lifecycle.UseCase
	AnalyticsUC *analytics.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Sitios publicados e ingesta de interacciones (público, sin token)
	publicHandler := NewPublicHandler(deps.ListingUC, deps.AnalyticsUC)
	public := api.Group("/public/sites")
	public.Get("/:slug", publicHandler.GetSite)
	public.Post("/:slug/events", publicHandler.RecordEvent)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Slugs (protegido)
	slugHandler := NewSlugHandler(deps.SlugUC)
	protected.Get("/slugs/check", slugHandler.Check)

	// Listings: superficie del dueño (protegido)
	listings := protected.Group("/listings")
	listingHandler := NewListingHandler(deps.LifecycleUC, deps.ListingUC)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	listings.Post("/", listingHandler.Create)
	listings.Get("/mine", listingHandler.ListMine)
	listings.Get("/:id", listingHandler.GetByID)
	listings.Post("/:id/edits", listingHandler.StageEdit)
	listings.Get("/:id/stats", analyticsHandler.Stats)

	// Moderación (protegido, solo main_admin)
	moderation := protected.Group("/moderation", RequireRole(entity.RoleMainAdmin))
	moderationHandler := NewModerationHandler(deps.LifecycleUC, deps.ListingUC)
	moderation.Get("/listings", moderationHandler.PendingListings)
	moderation.Post("/listings/:id/approve", moderationHandler.Approve)
	moderation.Post("/listings/:id/reject", moderationHandler.Reject)
	moderation.Get("/edits", moderationHandler.PendingEdits)
	moderation.Post("/edits/:id/approve", moderationHandler.ApproveEdit)
	moderation.Post("/edits/:id/reject", moderationHandler.RejectEdit)
}
