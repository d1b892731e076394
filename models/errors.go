package models

import "errors"

// Error taxonomy shared across the generation pipeline. Wrap these with
// fmt.Errorf("%w: ...") so callers can classify with errors.Is.
var (
	// ErrInvalidInput marks unresolvable codes/symbols or missing request
	// fields. A client error, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAssetNotFound marks a missing badge asset for a (brand, variant)
	// pair. Fails the whole request.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrFetchFailed marks a network failure resolving external flag art.
	// The caller may retry the whole request.
	ErrFetchFailed = errors.New("external fetch failed")

	// ErrRenderFailed marks a raster conversion failure. Indicates an
	// internal composition bug rather than bad input.
	ErrRenderFailed = errors.New("render failed")
)
