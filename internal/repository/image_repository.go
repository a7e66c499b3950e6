package repository

import (
	"context"

	"go-label-verifier/internal/storage"
	"go-label-verifier/pkg/validation"
)

// imageRepository implements LabelImageRepository over a pluggable fetcher
// (HTTP or Azure blob).
type imageRepository struct {
	fetcher   storage.ImageFetcher
	validator *validation.URLValidator
}

// NewLabelImageRepository creates a repository backed by the given fetcher.
func NewLabelImageRepository(fetcher storage.ImageFetcher) LabelImageRepository {
	return &imageRepository{
		fetcher:   fetcher,
		validator: validation.NewURLValidator(),
	}
}

// FetchImage retrieves the raw image bytes for a label
func (r *imageRepository) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	return r.fetcher.FetchImage(ctx, imageURL)
}

// ValidateImageURL validates if the provided URL is acceptable
func (r *imageRepository) ValidateImageURL(imageURL string) error {
	return r.validator.ValidateImageURL(imageURL)
}
