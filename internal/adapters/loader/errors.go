package loader

import "errors"

// Sentinel errors for input loading.
var (
	ErrEmptyInput = errors.New("input has no rows")
	ErrNoHeader   = errors.New("header row is too short")
	ErrRowWidth   = errors.New("row width does not match header")
)
