package render

import "errors"

// Sentinel errors for rendering.
var (
	ErrUnknownFormat = errors.New("unknown report format")
)
