// Package app runs a contest: it guards and applies voter rounds, keeps
// a snapshot per round, logs the leaders and publishes reports.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scoreboard/internal/adapters/render"
	"github.com/okian/scoreboard/internal/adapters/repository"
	"github.com/okian/scoreboard/internal/domain/dedupe"
	"github.com/okian/scoreboard/internal/domain/leaderboard"
	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/internal/domain/scoring"
	"github.com/okian/scoreboard/internal/domain/types"
	"github.com/okian/scoreboard/pkg/logger"
	"github.com/okian/scoreboard/pkg/metrics"
)

// defaultTopN is how many leaders are logged per round.
const defaultTopN = 5

// Publisher receives every rendered report. *render.DirWriter satisfies it.
type Publisher interface {
	Write(ctx context.Context, r render.Report) (string, error)
}

// Round is the outcome of one voter round.
type Round struct {
	Index     int
	Voter     string
	Ranking   []*model.Entry
	Standings []types.Standing
}

// Result is the outcome of a full run.
type Result struct {
	RunID   string
	Rounds  []Round
	Summary []types.Standing
	Reports []string
}

// Service processes the voter rounds of one contest.
type Service struct {
	mu sync.Mutex

	store     repository.Store
	deduper   dedupe.Deduper
	engine    *scoring.Engine
	publisher Publisher
	theme     render.Theme
	topN      int
	now       func() time.Time

	contest *model.Contest
	ranking []*model.Entry

	logger logger.Logger
}

// New constructs a Service with an in-memory store and round guard.
func New(opts ...Option) *Service {
	s := &Service{
		topN: defaultTopN,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Nop()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithClock(s.now))
	}
	if s.deduper == nil {
		s.deduper = dedupe.NewInMemoryDeduper()
	}
	if s.engine == nil {
		s.engine = scoring.NewEngine(scoring.WithLogger(s.logger.Named("scoring")))
	}
	return s
}

// bind ties the service to contest on first use.
func (s *Service) bind(contest *model.Contest) error {
	if contest == nil {
		return ErrNoContest
	}
	if s.contest == nil {
		s.contest = contest
		s.ranking = contest.Entries
		metrics.UpdateContestSize(contest.EntryCount(), contest.VoterCount())
		return nil
	}
	if s.contest != contest {
		return fmt.Errorf("%w: %q", ErrContestMismatch, s.contest.Name)
	}
	return nil
}

// ProcessRound applies one voter's tokens, saves the resulting snapshot and
// returns the ranking. A voter index that was already applied is refused
// with ErrRoundAlreadyProcessed and leaves every entry untouched. When the
// snapshot cannot be saved the entries are rolled back and the round may be
// retried.
func (s *Service) ProcessRound(ctx context.Context, contest *model.Contest, voterIndex int) (Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bind(contest); err != nil {
		return Round{}, err
	}

	key := dedupe.RoundKey(voterIndex)
	if s.deduper.SeenAndRecord(ctx, key) {
		metrics.RecordError("app", "round_duplicate")
		return Round{}, fmt.Errorf("%w: %d", ErrRoundAlreadyProcessed, voterIndex)
	}

	start := time.Now()
	before := make([]model.Scores, len(contest.Entries))
	for i, e := range contest.Entries {
		before[i] = e.Scores()
	}
	ranking, err := s.engine.ProcessVoter(ctx, contest, voterIndex)
	if err != nil {
		s.deduper.Unrecord(ctx, key)
		metrics.RecordError("app", "round_failed")
		return Round{}, fmt.Errorf("process voter %d: %w", voterIndex, err)
	}

	round := Round{
		Index:     voterIndex,
		Voter:     contest.Voter(voterIndex),
		Ranking:   ranking,
		Standings: leaderboard.Standings(ranking, voterIndex),
	}
	if err := s.store.Save(ctx, repository.Snapshot{
		Round:     voterIndex,
		Voter:     round.Voter,
		Standings: round.Standings,
	}); err != nil {
		for i, e := range contest.Entries {
			e.SetScores(before[i])
		}
		s.deduper.Unrecord(ctx, key)
		metrics.RecordError("app", "round_save")
		return Round{}, fmt.Errorf("save round %d: %w", voterIndex, err)
	}

	s.ranking = ranking
	metrics.RecordRoundProcessed(float64(time.Since(start).Microseconds()) / 1000)

	return round, nil
}

// Summary returns the final standings. It is refused with
// ErrIncompleteRounds until every voter round has been applied.
func (s *Service) Summary(ctx context.Context) ([]types.Standing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contest == nil {
		return nil, ErrNoContest
	}
	if done := s.store.Count(ctx); done != s.contest.VoterCount() {
		return nil, fmt.Errorf("%w: %d of %d", ErrIncompleteRounds, done, s.contest.VoterCount())
	}

	if snap, err := s.store.Get(ctx, repository.SummaryRound); err == nil {
		return snap.Standings, nil
	}

	rows := leaderboard.Standings(s.ranking, leaderboard.SummaryRound)
	if err := s.store.Save(ctx, repository.Snapshot{
		Round:     repository.SummaryRound,
		Standings: rows,
	}); err != nil {
		return nil, fmt.Errorf("save summary: %w", err)
	}
	return rows, nil
}

// Run processes every voter in order, logs the top entries of each round
// and publishes a report per round plus the summary. Cancellation is
// checked between rounds.
func (s *Service) Run(ctx context.Context, contest *model.Contest) (*Result, error) {
	if contest == nil {
		return nil, ErrNoContest
	}
	res := &Result{RunID: uuid.NewString()}
	log := s.logger.With(logger.String("run_id", res.RunID), logger.String("contest", contest.Name))

	log.Info(ctx, "contest run started",
		logger.Int("entries", contest.EntryCount()),
		logger.Int("voters", contest.VoterCount()),
	)

	for i := 0; i < contest.VoterCount(); i++ {
		if err := ctx.Err(); err != nil {
			log.Warn(ctx, "contest run cancelled", logger.Int("round", i), logger.Error(err))
			return res, err
		}

		round, err := s.ProcessRound(ctx, contest, i)
		if err != nil {
			log.Error(ctx, "round failed", logger.Int("round", i), logger.Error(err))
			return res, err
		}
		res.Rounds = append(res.Rounds, round)
		s.logLeaders(ctx, log, round, contest.VoterCount())

		path, err := s.publish(ctx, res.RunID, contest, i, round.Voter, round.Standings)
		if err != nil {
			return res, err
		}
		if path != "" {
			res.Reports = append(res.Reports, path)
		}
	}

	if contest.VoterCount() == 0 {
		s.mu.Lock()
		err := s.bind(contest)
		s.mu.Unlock()
		if err != nil {
			return res, err
		}
	}

	summary, err := s.Summary(ctx)
	if err != nil {
		return res, err
	}
	res.Summary = summary

	path, err := s.publish(ctx, res.RunID, contest, render.SummaryRound, "", summary)
	if err != nil {
		return res, err
	}
	if path != "" {
		res.Reports = append(res.Reports, path)
	}

	log.Info(ctx, "contest run finished",
		logger.Int("rounds", len(res.Rounds)),
		logger.Int("rounds_recorded", int(s.deduper.Size())),
		logger.Int("reports", len(res.Reports)),
	)
	return res, nil
}

func (s *Service) logLeaders(ctx context.Context, log logger.Logger, round Round, voters int) {
	for _, r := range leaderboard.TopN(round.Ranking, s.topN) {
		log.Info(ctx, "standing",
			logger.String("voter", round.Voter),
			logger.String("round", fmt.Sprintf("%d/%d", round.Index+1, voters)),
			logger.Int("rank", r.Rank),
			logger.String("entry", r.Entry.Title()),
			logger.Int("points", r.Entry.DisplayPoints),
			logger.Bool("disqualified", r.Entry.Disqualified),
		)
	}
}

func (s *Service) publish(ctx context.Context, runID string, contest *model.Contest, round int, voter string, rows []types.Standing) (string, error) {
	if s.publisher == nil {
		return "", nil
	}
	path, err := s.publisher.Write(ctx, render.Report{
		RunID:            runID,
		Contest:          contest.Name,
		Round:            round,
		Voter:            voter,
		VoterCount:       contest.VoterCount(),
		DisplayFlags:     contest.DisplayFlags,
		DisplayCountries: contest.DisplayCountries,
		Theme:            s.theme,
		GeneratedAt:      s.now(),
		Standings:        rows,
	})
	if err != nil {
		return "", fmt.Errorf("publish report: %w", err)
	}
	return path, nil
}

// Leaders returns the first n rows of the stored summary. Summary must
// have succeeded first.
func (s *Service) Leaders(ctx context.Context, n int) ([]types.Standing, error) {
	return s.store.TopN(ctx, repository.SummaryRound, n)
}

// LastRound returns the snapshot of the most recently applied voter round.
func (s *Service) LastRound(ctx context.Context) (repository.Snapshot, error) {
	return s.store.Latest(ctx)
}
