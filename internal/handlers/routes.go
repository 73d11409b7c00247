package handlers

import "github.com/gofiber/fiber/v2"

// Register mounts the bridge routes. protect guards the upload routes.
func (h *Handler) Register(router fiber.Router, protect fiber.Handler) {
	router.Get("/health", h.Health)

	router.Post("/ocr", protect, h.OCR)
	router.Post("/upload-handwritten", protect, h.UploadHandwritten)
	router.Post("/upload-textbook", protect, h.UploadTextbook)
}
