package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/foxxcyber/notes-bridge/internal/config"
	"github.com/foxxcyber/notes-bridge/internal/logger"
	"github.com/foxxcyber/notes-bridge/internal/models"
	"github.com/foxxcyber/notes-bridge/internal/services"
)

// MessageNoFile is returned when a request carries no "file" part
const MessageNoFile = "No file provided"

var errNoFile = errors.New(MessageNoFile)

// Handler holds all handler dependencies
type Handler struct {
	cfg      *config.Config
	ocr      services.TextExtractor
	pipeline *services.Pipeline
}

// New creates a new Handler instance
func New(cfg *config.Config, ocr services.TextExtractor, pipeline *services.Pipeline) *Handler {
	return &Handler{
		cfg:      cfg,
		ocr:      ocr,
		pipeline: pipeline,
	}
}

// ErrorHandler is a custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Default to 500
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	// Check if it's a Fiber error
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	requestLogger(c).Error().Err(err).Int("status", code).Msg("Request failed")

	return Error(c, code, message)
}

// Error returns an error response
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Error: message,
	})
}

// readUpload reads the "file" part of a multipart request into memory
func readUpload(c *fiber.Ctx) (*models.Upload, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, errNoFile
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return &models.Upload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// requestLogger returns a logger tagged with the request id set by the requestid middleware
func requestLogger(c *fiber.Ctx) *zerolog.Logger {
	id, _ := c.Locals("requestid").(string)
	l := logger.WithRequestID(id).With().
		Str("component", "http").
		Str("path", c.Path()).
		Logger()
	return &l
}
