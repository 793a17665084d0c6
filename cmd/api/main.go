package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/tu-usuario/minegocio/internal/application/analytics"
	"github.com/tu-usuario/minegocio/internal/application/auth"
	"github.com/tu-usuario/minegocio/internal/application/lifecycle"
	"github.com/tu-usuario/minegocio/internal/application/usecase"
	"github.com/tu-usuario/minegocio/internal/infrastructure/notify"
	"github.com/tu-usuario/minegocio/internal/infrastructure/postgres"
	infraredis "github.com/tu-usuario/minegocio/internal/infrastructure/redis"
	httpRouter "github.com/tu-usuario/minegocio/internal/interfaces/http"
	"github.com/tu-usuario/minegocio/pkg/config"
	"github.com/tu-usuario/minegocio/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("base_domain", cfg.Platform.BaseDomain).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	listingRepo := postgres.NewListingRepository(pool)
	statsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de estadísticas — solo si hay Redis configurado. Sin Redis la
	// app funciona igual, leyendo siempre de PostgreSQL.
	var statsCache appanalytics.StatsCache
	if cfg.Redis.Addr != "" {
		cache, err := infraredis.NewStatsCache(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer cache.Close()
		statsCache = cache
	}

	notifier := notify.NewLogNotifier(log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	slugUC := usecase.NewSlugUseCase(listingRepo)
	listingUC := usecase.NewListingUseCase(listingRepo, cfg.Platform)
	lifecycleUC := lifecycle.New(txRunner, listingRepo, userRepo, notifier)
	analyticsUC := appanalytics.New(statsRepo, listingRepo, statsCache)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MiNegocio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		SlugUC:      slugUC,
		ListingUC:   listingUC,
		LifecycleUC: lifecycleUC,
		AnalyticsUC: analyticsUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
