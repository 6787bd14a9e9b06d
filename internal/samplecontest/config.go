// Package samplecontest generates random but well-formed contest files for
// trying the scoreboard by hand.
package samplecontest

import (
	"errors"
	"fmt"
)

// Sentinel errors for generator configuration.
var (
	ErrInvalidConfig = errors.New("invalid sample contest config")
)

// Config holds configuration for one generated contest.
type Config struct {
	Entries    int     // Number of entries (rows)
	Voters     int     // Number of voters (token columns)
	DQRate     float64 // Probability in [0,1] that a voter disqualifies one entry
	Delimiter  rune    // Field delimiter of the written file
	OutputFile string  // Destination path
	Seed       uint64  // 0 picks a random seed
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Entries < 1 {
		return fmt.Errorf("%w: entries must be at least 1", ErrInvalidConfig)
	}
	if c.Voters < 0 {
		return fmt.Errorf("%w: voters must not be negative", ErrInvalidConfig)
	}
	if c.DQRate < 0 || c.DQRate > 1 {
		return fmt.Errorf("%w: dq rate %.2f not in [0,1]", ErrInvalidConfig, c.DQRate)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("%w: output file is required", ErrInvalidConfig)
	}
	return nil
}

// Stats summarizes a generated contest.
type Stats struct {
	Entries           int
	Voters            int
	PointsAwarded     int
	Disqualifications int
}
