package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/foxxcyber/notes-bridge/internal/app"
	"github.com/foxxcyber/notes-bridge/internal/config"
	"github.com/foxxcyber/notes-bridge/internal/logger"
	"github.com/foxxcyber/notes-bridge/internal/server"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	log := logger.WithComponent("main")

	h, err := app.NewHandler(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	srv := server.New(cfg, h)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("ocr_service", cfg.OCRURL).
			Str("langflow_webhook", cfg.LangflowURL).
			Str("ocr_backend", cfg.OCRBackend).
			Msg("Starting notes bridge")
		if err := srv.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down gracefully...")
	if err := srv.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
