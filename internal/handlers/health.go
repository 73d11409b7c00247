package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/notes-bridge/internal/models"
)

// Health reports the configured upstreams without contacting them
// GET /health
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:          models.HealthStatusHealthy,
		OCRService:      h.cfg.OCRURL,
		LangflowWebhook: h.cfg.LangflowURL,
	})
}
