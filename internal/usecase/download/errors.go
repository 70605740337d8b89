package download

import "errors"

var (
	// ErrEmptyBatch and ErrBatchTooLarge are raised before any session
	// exists.
	ErrEmptyBatch    = errors.New("bulk: url list is empty")
	ErrBatchTooLarge = errors.New("bulk: too many urls in one batch")

	ErrSessionNotFound = errors.New("bulk: session not found")
)
