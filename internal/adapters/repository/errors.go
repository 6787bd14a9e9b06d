package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNotFound     = errors.New("snapshot not found")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
)
