package entity

import "errors"

var (
	// ErrInvalidImage means the uploaded bytes could not be decoded as an image.
	ErrInvalidImage = errors.New("invalid image")

	// ErrModelUnavailable means the classifier was never loaded successfully.
	ErrModelUnavailable = errors.New("model is not loaded")

	// ErrInference means the classifier backend failed during a forward pass.
	ErrInference = errors.New("inference failed")
)
