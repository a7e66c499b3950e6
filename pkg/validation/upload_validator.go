package validation

import (
	"net/http"
	"strings"

	apperrors "go-label-verifier/internal/errors"
)

// UploadValidator validates uploaded label image files before OCR
type UploadValidator struct {
	maxSize      int64
	allowedTypes []string
}

// NewUploadValidator creates an upload validator. maxSize <= 0 disables the
// size check.
func NewUploadValidator(maxSize int64) *UploadValidator {
	return &UploadValidator{
		maxSize: maxSize,
		allowedTypes: []string{
			"image/jpeg",
			"image/png",
			"image/webp",
			"image/gif",
		},
	}
}

// ValidateUpload checks the uploaded file's name, size, and sniffed content
// type. The filename check mirrors the client input gate: a missing or empty
// filename means no image was really selected.
func (v *UploadValidator) ValidateUpload(filename string, data []byte) error {
	if strings.TrimSpace(filename) == "" {
		return apperrors.NewValidationError("No image file selected", nil)
	}

	if len(data) == 0 {
		return apperrors.NewValidationError("Uploaded image is empty", nil)
	}

	if v.maxSize > 0 && int64(len(data)) > v.maxSize {
		return apperrors.NewValidationError("Uploaded image exceeds the size limit", nil)
	}

	contentType := http.DetectContentType(data)
	if !v.isTypeAllowed(contentType) {
		return apperrors.NewValidationError("Uploaded file is not a supported image type", nil)
	}

	return nil
}

func (v *UploadValidator) isTypeAllowed(contentType string) bool {
	for _, allowed := range v.allowedTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
