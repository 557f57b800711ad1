package handlers

import (
	"errors"
	"log"

	"github.com/clouddrop/server/internal/apperr"
	"github.com/clouddrop/server/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp builds the Fiber application: middleware stack, routes and
// the single error boundary that turns tagged errors into JSON.
func NewApp(cfg *config.Config, authHandler *AuthHandler, fileHandler *FileHandler, authGate fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		// Above the upload cap so the explicit size check, not the
		// transport, rejects oversized files.
		BodyLimit: int(cfg.MaxUploadSize) + (10 << 20),
	})

	app.Use(requestid.New())
	app.Use(logger.New())

	corsConfig := cors.Config{}
	if cfg.AllowedOrigins != "" {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	app.Use(cors.New(corsConfig))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":      "Cloud Drop API",
			"status":    "OK",
			"endpoints": []string{"/api/upload", "/api/files"},
		})
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", authGate, authHandler.Me)

	api.Post("/upload", authGate, fileHandler.Upload)

	files := api.Group("/files", authGate)
	files.Get("/", fileHandler.List)
	files.Get("/:id", fileHandler.GetByID)
	files.Delete("/:id", fileHandler.Delete)

	return app
}

// errorHandler is the only place errors become HTTP. Untagged errors
// collapse to 500 with a generic message.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
	}

	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		log.Printf("internal error: %v", err)
	}
	return c.Status(kind.Status()).JSON(fiber.Map{"message": apperr.MessageOf(err)})
}
