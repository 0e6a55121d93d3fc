package pipeline

import "errors"

var (
	// ErrUnsupportedFile is returned for inputs that are neither PDF nor CSV.
	ErrUnsupportedFile = errors.New("unsupported file type; expected .pdf or .csv")
	// ErrBadFilter is returned for malformed date or month filters.
	ErrBadFilter = errors.New("invalid filter")
)
