package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foxxcyber/notes-bridge/internal/config"
	"github.com/foxxcyber/notes-bridge/internal/handlers"
	"github.com/foxxcyber/notes-bridge/internal/metrics"
	"github.com/foxxcyber/notes-bridge/internal/middleware"
)

// New builds the Fiber app with global middleware and all bridge routes
func New(cfg *config.Config, h *handlers.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "notes-bridge",
		ErrorHandler:          handlers.ErrorHandler,
		BodyLimit:             cfg.BodyLimit(),
		DisableStartupMessage: !cfg.IsDevelopment(),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(metrics.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	h.Register(app, middleware.TokenRequired(cfg))

	return app
}
