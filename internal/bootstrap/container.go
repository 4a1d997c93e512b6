package bootstrap

import (
	"log"

	"infograph-be/internal/config"
	"infograph-be/internal/controller"
	"infograph-be/internal/pkg/logger"
	"infograph-be/internal/pkg/serverutils"
	"infograph-be/internal/repository/schema"
	"infograph-be/internal/repository/unitofwork"
	"infograph-be/internal/service"
	"infograph-be/pkg/render"
	"infograph-be/pkg/search"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	AuthController        controller.IAuthController
	SessionController     controller.ISessionController
	InfographicController controller.IInfographicController

	JwtMiddleware fiber.Handler
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Schema
	if err := schema.NewManager(db).EnsureAll(); err != nil {
		log.Fatalf("[FATAL] Failed to ensure database schema: %v", err)
	}

	// 3. Infrastructure
	var provider search.Provider
	if cfg.App.TestMode {
		provider = search.NewFixtureProvider()
		log.Printf("[INFO] Using Search Provider: FIXTURE")
	} else {
		provider = search.NewDuckDuckGoProvider()
		log.Printf("[INFO] Using Search Provider: DUCKDUCKGO")
	}

	renderer := render.NewBasicRenderer(cfg.Render.OutputDir)

	// 4. Services
	infographicService := service.NewInfographicService(uowFactory, renderer, sysLogger)
	sessionService := service.NewSessionService(uowFactory, provider, infographicService, cfg.Search.MaxResults, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.Auth.JWTSecret, cfg.Auth.GoogleClientID, sysLogger)

	// 5. Controllers
	return &Container{
		AuthController:        controller.NewAuthController(authService),
		SessionController:     controller.NewSessionController(sessionService),
		InfographicController: controller.NewInfographicController(infographicService),
		JwtMiddleware:         serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret),
	}
}
