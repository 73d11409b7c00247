package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/notes-bridge/internal/models"
)

// OCR extracts text from an uploaded file with the configured OCR backend
// POST /ocr
func (h *Handler) OCR(c *fiber.Ctx) error {
	upload, err := readUpload(c)
	if err != nil {
		if errors.Is(err, errNoFile) {
			return Error(c, fiber.StatusBadRequest, MessageNoFile)
		}
		return err
	}

	result, err := h.ocr.ProcessFile(c.UserContext(), upload)
	if err != nil {
		return fmt.Errorf("ocr: %w", err)
	}

	return c.JSON(models.OCRResponse{
		Text: result.Text,
	})
}
