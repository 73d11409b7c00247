package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/foxxcyber/notes-bridge/internal/config"
	"github.com/foxxcyber/notes-bridge/internal/logger"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Logs go to stderr so stdout stays valid JSON
	logCfg := cfg.GetLoggerConfig()
	logCfg.Output = "stderr"
	if err := logger.Setup(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	Execute(cfg)
}
