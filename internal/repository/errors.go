package repository

import "errors"

var (
	// ErrInvalidImageURL indicates an invalid label image URL
	ErrInvalidImageURL = errors.New("invalid image URL")

	// ErrImageNotFound indicates the label image was not found
	ErrImageNotFound = errors.New("image not found")
)
