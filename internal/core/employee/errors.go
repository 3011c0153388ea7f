package employee

import "errors"

var (
	ErrInvalidID       = errors.New("employee: invalid id")
	ErrValidation      = errors.New("employee: validation failed")
	ErrFetch           = errors.New("employee: failed to fetch employees")
	ErrPersistence     = errors.New("employee: failed to persist roster")
	ErrSlotNotFound    = errors.New("employee: roster slot not found")
	ErrCorruptSnapshot = errors.New("employee: corrupt roster snapshot")
)
