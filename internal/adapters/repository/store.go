// Package repository keeps the leaderboard snapshot of every voter round.
package repository

import (
	"context"
	"time"

	"github.com/okian/scoreboard/internal/domain/types"
)

// SummaryRound identifies the final summary snapshot.
const SummaryRound = -1

// Snapshot is the ranking as it stood after one voter round, or the final
// summary when Round is SummaryRound.
type Snapshot struct {
	Round     int
	Voter     string
	Standings []types.Standing
	TakenAt   time.Time
}

// IsSummary reports whether s is the final summary.
func (s Snapshot) IsSummary() bool { return s.Round == SummaryRound }

// Store provides read/write access to round snapshots.
type Store interface {
	// Save stores a snapshot, replacing any earlier one for the same round.
	Save(ctx context.Context, snap Snapshot) error

	// Get returns the snapshot of a round.
	// Returns ErrNotFound if the round was never saved.
	Get(ctx context.Context, round int) (Snapshot, error)

	// TopN returns the first n standings of a round.
	TopN(ctx context.Context, round int, n int) ([]types.Standing, error)

	// Latest returns the most recently saved voter round (not the summary).
	Latest(ctx context.Context) (Snapshot, error)

	// Count returns the number of saved voter rounds.
	Count(ctx context.Context) int
}
