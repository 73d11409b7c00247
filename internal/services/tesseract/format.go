package tesseract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/foxxcyber/notes-bridge/internal/models"
)

// ErrUnsupportedFormat is returned for uploads Tesseract cannot read directly, such as PDFs
var ErrUnsupportedFormat = errors.New("unsupported file type for local OCR")

var supportedTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/tiff",
	"image/bmp",
	"image/webp",
}

// checkFormat rejects empty uploads and non-image content types
func checkFormat(upload *models.Upload) error {
	if upload == nil || len(upload.Data) == 0 {
		return fmt.Errorf("%w: empty file", ErrUnsupportedFormat)
	}

	contentType := upload.ContentTypeOrDefault()
	for _, t := range supportedTypes {
		if strings.EqualFold(contentType, t) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
}
