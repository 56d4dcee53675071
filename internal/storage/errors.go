package storage

import "github.com/pkg/errors"

// Failure taxonomy for adapter operations. Adapters wrap these sentinels
// with context; callers match them with errors.Is.
var (
	ErrCreateFailed         = errors.New("storage: resource creation failed")
	ErrCompileFailed        = errors.New("storage: shader compilation failed")
	ErrLinkFailed           = errors.New("storage: program link failed")
	ErrValidationFailed     = errors.New("storage: validation failed")
	ErrUnsupportedExtension = errors.New("storage: unsupported extension")
)

// Allocation failures are validation failures, but the two causes must stay
// distinguishable: a non-positive dimension is a caller bug, an oversized
// one is a planning fallback that did not fit the hardware.
var (
	ErrInvalidSize  = errors.WithMessage(ErrValidationFailed, "invalid (non-positive) texture size")
	ErrExceedsLimit = errors.WithMessage(ErrValidationFailed, "texture exceeds hardware maximum")
)
