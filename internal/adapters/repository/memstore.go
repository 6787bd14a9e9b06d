package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/scoreboard/internal/domain/types"
)

// MemoryStore is an in-memory Store safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	byRound map[int]Snapshot
	order   []int // voter rounds in save order
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byRound: make(map[int]Snapshot),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores a copy of snap's standings.
func (s *MemoryStore) Save(_ context.Context, snap Snapshot) error {
	if snap.Round < SummaryRound {
		return fmt.Errorf("save snapshot: invalid round %d", snap.Round)
	}
	rows := make([]types.Standing, len(snap.Standings))
	copy(rows, snap.Standings)
	snap.Standings = rows
	if snap.TakenAt.IsZero() {
		snap.TakenAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byRound[snap.Round]; !exists && !snap.IsSummary() {
		s.order = append(s.order, snap.Round)
	}
	s.byRound[snap.Round] = snap
	return nil
}

// Get returns the snapshot of a round.
func (s *MemoryStore) Get(_ context.Context, round int) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.byRound[round]
	if !ok {
		return Snapshot{}, fmt.Errorf("round %d: %w", round, ErrNotFound)
	}
	return snap, nil
}

// TopN returns the first n standings of a round. n larger than the
// ranking returns the whole ranking.
func (s *MemoryStore) TopN(ctx context.Context, round int, n int) ([]types.Standing, error) {
	if n < 0 {
		return nil, ErrInvalidLimit
	}
	snap, err := s.Get(ctx, round)
	if err != nil {
		return nil, err
	}
	if n > len(snap.Standings) {
		n = len(snap.Standings)
	}
	out := make([]types.Standing, n)
	copy(out, snap.Standings[:n])
	return out, nil
}

// Latest returns the most recently saved voter round.
func (s *MemoryStore) Latest(_ context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return Snapshot{}, fmt.Errorf("latest round: %w", ErrNotFound)
	}
	return s.byRound[s.order[len(s.order)-1]], nil
}

// Count returns the number of saved voter rounds.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
