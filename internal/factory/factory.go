package factory

import (
	"fmt"

	"go-label-verifier/internal/config"
	"go-label-verifier/internal/ocr"
	"go-label-verifier/internal/storage"
)

// EngineType represents different OCR engine backends
type EngineType string

const (
	// TesseractEngine is the default Tesseract-backed OCR engine
	TesseractEngine EngineType = "tesseract"
)

// NewOCREngine creates an OCR engine of the given type.
func NewOCREngine(engineType EngineType, cfg *config.Config) (ocr.Engine, error) {
	switch engineType {
	case TesseractEngine:
		return ocr.NewTesseractEngine(cfg.OCRLanguage), nil
	default:
		return nil, fmt.Errorf("unsupported OCR engine type: %s", engineType)
	}
}

// NewImageFetcher creates the image fetcher selected by the configured
// storage backend.
func NewImageFetcher(cfg *config.Config) (storage.ImageFetcher, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendHTTP:
		return storage.NewHTTPImageFetcher(cfg.ImageFetchTimeout, cfg.MaxUploadSize), nil
	case config.StorageBackendAzure:
		return storage.NewAzureImageFetcher(cfg.AzureStorageAccount, cfg.AzureStorageKey)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
