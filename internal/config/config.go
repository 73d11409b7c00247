package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/foxxcyber/notes-bridge/internal/logger"
)

// OCR backends selectable for the direct OCR route
const (
	BackendRemote    = "remote"
	BackendTesseract = "tesseract"
)

type Config struct {
	// Server
	Port           string
	AllowedOrigins string
	MaxUploadMB    int

	// Environment
	Environment string

	// Upstreams
	OCRURL         string
	LangflowURL    string
	OCRAPIKey      string
	OCRProviderURL string
	OCRLanguage    string
	OCREngine      string
	OCRBackend     string

	// Timeouts
	OCRTimeout      time.Duration
	PipelineTimeout time.Duration

	// Cleaning response fields
	CleanFields      []string
	CleanNestedField string

	// Auth
	JWTSecret string

	// Logging
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() *Config {
	cfg := &Config{
		Port:             getEnv("PORT", "8000"),
		AllowedOrigins:   getEnv("ALLOWED_ORIGINS", "*"),
		MaxUploadMB:      getIntEnv("MAX_UPLOAD_MB", 20),
		Environment:      getEnv("ENVIRONMENT", "development"),
		OCRURL:           getEnv("OCR_URL", ""),
		LangflowURL:      getEnv("LANGFLOW_URL", ""),
		OCRAPIKey:        getEnv("OCR_API_KEY", ""),
		OCRProviderURL:   getEnv("OCR_PROVIDER_URL", "https://api.ocr.space/parse/image"),
		OCRLanguage:      getEnv("OCR_LANGUAGE", "eng"),
		OCREngine:        getEnv("OCR_ENGINE", "2"),
		OCRBackend:       strings.ToLower(getEnv("OCR_BACKEND", BackendRemote)),
		OCRTimeout:       getDurationEnv("OCR_TIMEOUT_SECONDS", 60) * time.Second,
		PipelineTimeout:  getDurationEnv("PIPELINE_TIMEOUT_SECONDS", 90) * time.Second,
		CleanFields:      getListEnv("CLEAN_FIELDS", []string{"output", "result", "text", "message"}),
		CleanNestedField: getEnv("CLEAN_NESTED_FIELD", "text"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", ""),
		LogTimeFormat:    getEnv("LOG_TIME_FORMAT", time.RFC3339),
		LogOutput:        getEnv("LOG_OUTPUT", "stdout"),
	}

	// Production logs default to JSON for collectors
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		}
	}

	return cfg
}

// Validate checks the settings that would make every request fail.
// Empty upstream URLs are allowed; the health check reports them as-is.
func (c *Config) Validate() error {
	if c.OCRTimeout <= 0 {
		return fmt.Errorf("OCR_TIMEOUT_SECONDS must be positive")
	}
	if c.PipelineTimeout <= 0 {
		return fmt.Errorf("PIPELINE_TIMEOUT_SECONDS must be positive")
	}
	if len(c.CleanFields) == 0 {
		return fmt.Errorf("CLEAN_FIELDS must name at least one field")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	switch c.OCRBackend {
	case BackendRemote, BackendTesseract:
	default:
		return fmt.Errorf("unknown OCR_BACKEND %q", c.OCRBackend)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// BodyLimit is the maximum accepted request size in bytes
func (c *Config) BodyLimit() int {
	return c.MaxUploadMB * 1024 * 1024
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal)
		}
	}
	return time.Duration(defaultValue)
}

// getListEnv splits a comma separated value, dropping blanks
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
