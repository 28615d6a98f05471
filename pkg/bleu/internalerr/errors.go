package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrLengthMismatch      = errors.New("length mismatch")
	ErrNoReferences        = errors.New("no reference corpora")
	ErrZeroCandidateLength = errors.New("zero candidate length")
)
