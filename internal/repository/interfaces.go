package repository

import "context"

// LabelImageRepository defines data access for label images referenced by
// URL.
type LabelImageRepository interface {
	// FetchImage retrieves the raw image bytes for a label
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)

	// ValidateImageURL validates if the provided URL is acceptable
	ValidateImageURL(imageURL string) error
}
