package model

import "errors"

// Sentinel errors for contest construction.
var (
	ErrEmptyName  = errors.New("contest name must not be empty")
	ErrTokenCount = errors.New("vote token count does not match voter count")
)
