package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/notes-bridge/internal/middleware"
	"github.com/foxxcyber/notes-bridge/internal/models"
)

// UploadHandwritten runs handwritten notes through OCR and the cleaning webhook
// POST /upload-handwritten
func (h *Handler) UploadHandwritten(c *fiber.Ctx) error {
	log := requestLogger(c)

	upload, err := readUpload(c)
	if err != nil {
		if errors.Is(err, errNoFile) {
			return Error(c, fiber.StatusBadRequest, MessageNoFile)
		}
		log.Error().Err(err).Msg("Failed to read upload")
		return Error(c, fiber.StatusInternalServerError, err.Error())
	}

	log.Info().
		Str("filename", upload.Filename).
		Int("bytes", upload.Size()).
		Str("subject", middleware.GetSubject(c)).
		Msg("Processing upload")

	result, err := h.pipeline.Run(c.UserContext(), upload)
	if err != nil {
		log.Error().Err(err).Msg("Upload pipeline failed")
		return Error(c, fiber.StatusInternalServerError, err.Error())
	}

	log.Info().
		Int("raw_chars", len(result.RawOCR)).
		Int("cleaned_chars", len(result.Cleaned)).
		Msg("Returning cleaned text")

	return c.JSON(models.UploadResponse{
		Success: true,
		Text:    result.Cleaned,
		RawOCR:  result.RawOCR,
	})
}

// UploadTextbook handles textbook and past-paper uploads (same process)
// POST /upload-textbook
func (h *Handler) UploadTextbook(c *fiber.Ctx) error {
	return h.UploadHandwritten(c)
}
