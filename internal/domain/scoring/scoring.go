// Package scoring applies voter rounds to a contest and ranks its entries.
package scoring

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/logger"
	"github.com/okian/scoreboard/pkg/metrics"
)

// Recorder receives per-token counters. *metrics.Manager satisfies it.
type Recorder interface {
	RecordVote(kind string, points int)
	RecordDisqualification()
}

// globalRecorder forwards to the package-level metrics manager.
type globalRecorder struct{}

func (globalRecorder) RecordVote(kind string, points int) { metrics.RecordVote(kind, points) }
func (globalRecorder) RecordDisqualification()            { metrics.RecordDisqualification() }

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRecorder sets where token counters go.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// Engine applies voter rounds. It holds no contest state: every call
// mutates only the contest it is given.
type Engine struct {
	logger   logger.Logger
	recorder Recorder
}

// NewEngine creates an engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:   logger.Nop(),
		recorder: globalRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessVoter applies the votes of contest.Voters[voterIndex] to every
// entry and returns a freshly sorted ranking of all entries.
//
// Calling it twice for the same index counts that voter twice. Indices may
// be applied in any order since accumulation is commutative.
func (e *Engine) ProcessVoter(ctx context.Context, contest *model.Contest, voterIndex int) ([]*model.Entry, error) {
	if voterIndex < 0 || voterIndex >= contest.VoterCount() {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrVoterIndexOutOfRange, voterIndex, contest.VoterCount())
	}
	// validate first so a bad row leaves every entry untouched
	for _, entry := range contest.Entries {
		if _, ok := entry.Token(voterIndex); !ok {
			return nil, fmt.Errorf("%w: entry %d (%s), voter %d", ErrMissingToken, entry.Seq, entry.Artist, voterIndex)
		}
	}

	for _, entry := range contest.Entries {
		e.apply(ctx, entry, contest.Voters[voterIndex], ParseToken(entry.VoteTokens[voterIndex]))
	}

	return Rank(contest.Entries), nil
}

func (e *Engine) apply(ctx context.Context, entry *model.Entry, voter string, v Vote) {
	e.recorder.RecordVote(v.Kind.String(), v.Points)

	switch v.Kind {
	case KindDisqualify:
		if !entry.Disqualified {
			e.recorder.RecordDisqualification()
			e.logger.Debug(ctx, "entry disqualified",
				logger.String("artist", entry.Artist),
				logger.String("song", entry.Song),
				logger.String("voter", voter))
		}
		entry.Disqualified = true
		entry.TotalPoints = -1
	case KindPoints:
		if !entry.Disqualified {
			entry.TotalPoints += v.Points
		}
		entry.DisplayPoints += v.Points
		entry.VotersCounted++
	case KindAbstain:
	}
}

// Rank returns a new slice of entries ordered by total points, display
// points and voters counted (all descending), then artist name ignoring
// case, then input position.
func Rank(entries []*model.Entry) []*model.Entry {
	out := make([]*model.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i], out[j])
	})
	return out
}

// Less reports whether a ranks ahead of b.
func Less(a, b *model.Entry) bool {
	if a.TotalPoints != b.TotalPoints {
		return a.TotalPoints > b.TotalPoints
	}
	if a.DisplayPoints != b.DisplayPoints {
		return a.DisplayPoints > b.DisplayPoints
	}
	if a.VotersCounted != b.VotersCounted {
		return a.VotersCounted > b.VotersCounted
	}
	aa, ba := strings.ToLower(a.Artist), strings.ToLower(b.Artist)
	if aa != ba {
		return aa < ba
	}
	return a.Seq < b.Seq
}
