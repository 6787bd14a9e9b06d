package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/scoreboard/internal/adapters/render"
	"github.com/okian/scoreboard/internal/adapters/repository"
	app "github.com/okian/scoreboard/internal/app"
	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/internal/domain/types"
	"github.com/okian/scoreboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type recordingPublisher struct {
	reports []render.Report
	err     error
}

func (p *recordingPublisher) Write(_ context.Context, r render.Report) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.reports = append(p.reports, r)
	if r.IsSummary() {
		return "summary", nil
	}
	return r.Voter, nil
}

func newContest(voters []string, rows ...[]string) *model.Contest {
	entries := make([]*model.Entry, len(rows))
	for i, row := range rows {
		entries[i] = model.NewEntry(i, "user"+row[0], "country"+row[0], row[0], "song "+row[0], row[1:])
	}
	c, err := model.NewContest("Test Contest", voters, entries, model.WithDisplayCountries(true))
	if err != nil {
		panic(err)
	}
	return c
}

func scenario() *model.Contest {
	return newContest([]string{"V1", "V2"},
		[]string{"A", "5", "3"},
		[]string{"B", "DQ", "10"},
		[]string{"C", "", "7"},
	)
}

func artists(rows []types.Standing) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Artist
	}
	return out
}

func TestService_ProcessRound(t *testing.T) {
	Convey("Given a service and a contest", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		svc := app.New(app.WithStore(store), app.WithLogger(logger.Nop()))
		c := scenario()

		Convey("When the first round is processed", func() {
			round, err := svc.ProcessRound(ctx, c, 0)

			Convey("Then the round should carry the voter and the tokens awarded", func() {
				So(err, ShouldBeNil)
				So(round.Index, ShouldEqual, 0)
				So(round.Voter, ShouldEqual, "V1")
				So(artists(round.Standings), ShouldResemble, []string{"A", "C", "B"})
				So(round.Standings[0].Awarded, ShouldEqual, "5")
				So(round.Standings[2].Awarded, ShouldEqual, "DQ")
				So(round.Standings[2].Disqualified, ShouldBeTrue)
			})

			Convey("Then a snapshot should be stored", func() {
				So(store.Count(ctx), ShouldEqual, 1)
				snap, getErr := store.Get(ctx, 0)
				So(getErr, ShouldBeNil)
				So(snap.Voter, ShouldEqual, "V1")
			})

			Convey("And the same round is processed again", func() {
				_, again := svc.ProcessRound(ctx, c, 0)

				Convey("Then it should be refused without touching the entries", func() {
					So(errors.Is(again, app.ErrRoundAlreadyProcessed), ShouldBeTrue)
					So(c.Entries[0].DisplayPoints, ShouldEqual, 5)
					So(c.Entries[0].VotersCounted, ShouldEqual, 1)
				})
			})
		})

		Convey("When the voter index is out of range", func() {
			_, err := svc.ProcessRound(ctx, c, 5)

			Convey("Then an error should be returned and the index stay free", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, app.ErrRoundAlreadyProcessed), ShouldBeFalse)
				_, again := svc.ProcessRound(ctx, c, 5)
				So(errors.Is(again, app.ErrRoundAlreadyProcessed), ShouldBeFalse)
			})
		})

		Convey("When another contest is passed later", func() {
			_, err := svc.ProcessRound(ctx, c, 0)
			So(err, ShouldBeNil)
			_, err = svc.ProcessRound(ctx, scenario(), 1)

			Convey("Then ErrContestMismatch should be returned", func() {
				So(errors.Is(err, app.ErrContestMismatch), ShouldBeTrue)
			})
		})

		Convey("When no contest is given", func() {
			_, err := svc.ProcessRound(ctx, nil, 0)
			So(errors.Is(err, app.ErrNoContest), ShouldBeTrue)
		})
	})
}

func TestService_Summary(t *testing.T) {
	Convey("Given a service", t, func() {
		ctx := context.Background()
		svc := app.New()
		c := scenario()

		Convey("When nothing was processed", func() {
			_, err := svc.Summary(ctx)
			So(errors.Is(err, app.ErrNoContest), ShouldBeTrue)
		})

		Convey("When only some rounds were processed", func() {
			_, err := svc.ProcessRound(ctx, c, 1)
			So(err, ShouldBeNil)
			_, err = svc.Summary(ctx)

			Convey("Then the summary should be refused", func() {
				So(errors.Is(err, app.ErrIncompleteRounds), ShouldBeTrue)
			})
		})

		Convey("When rounds were processed out of order", func() {
			_, err := svc.ProcessRound(ctx, c, 1)
			So(err, ShouldBeNil)
			_, err = svc.ProcessRound(ctx, c, 0)
			So(err, ShouldBeNil)
			rows, err := svc.Summary(ctx)

			Convey("Then the summary should match the in-order result", func() {
				So(err, ShouldBeNil)
				So(artists(rows), ShouldResemble, []string{"A", "C", "B"})
				So(rows[0].Points, ShouldEqual, 8)
				So(rows[1].Points, ShouldEqual, 7)
				So(rows[2].Points, ShouldEqual, 10)
				for _, r := range rows {
					So(r.Awarded, ShouldBeEmpty)
				}
			})
		})
	})
}

func TestService_Run(t *testing.T) {
	Convey("Given a service with a recording publisher", t, func() {
		ctx := context.Background()
		pub := &recordingPublisher{}
		fixed := time.Date(2026, 5, 16, 21, 0, 0, 0, time.UTC)
		svc := app.New(
			app.WithRenderer(pub),
			app.WithTopN(2),
			app.WithTheme(render.Theme{Main: "#000", Accent: "#fff"}),
			app.WithClock(func() time.Time { return fixed }),
		)
		c := scenario()

		Convey("When the whole contest is run", func() {
			res, err := svc.Run(ctx, c)

			Convey("Then every round and the summary should be published", func() {
				So(err, ShouldBeNil)
				So(res.RunID, ShouldNotBeEmpty)
				So(res.Rounds, ShouldHaveLength, 2)
				So(res.Reports, ShouldResemble, []string{"V1", "V2", "summary"})
				So(pub.reports, ShouldHaveLength, 3)
				So(pub.reports[1].Heading(), ShouldEqual, "Now Voting: V2 (2/2)")
				So(pub.reports[2].IsSummary(), ShouldBeTrue)
				So(pub.reports[2].Theme.Accent, ShouldEqual, "#fff")
				So(pub.reports[2].DisplayCountries, ShouldBeTrue)
				So(pub.reports[2].GeneratedAt, ShouldEqual, fixed)
				So(pub.reports[0].RunID, ShouldEqual, res.RunID)
			})

			Convey("Then the summary should equal the last round's ranking", func() {
				So(artists(res.Summary), ShouldResemble, artists(res.Rounds[1].Standings))
			})

			Convey("Then the stored rounds should end with the last voter", func() {
				last, err := svc.LastRound(ctx)
				So(err, ShouldBeNil)
				So(last.Voter, ShouldEqual, "V2")
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			res, err := svc.Run(cctx, c)

			Convey("Then no round should be processed", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(res.Rounds, ShouldBeEmpty)
				So(c.Entries[0].VotersCounted, ShouldEqual, 0)
			})
		})

		Convey("When the publisher fails", func() {
			pub.err = errors.New("disk full")
			_, err := svc.Run(ctx, c)

			Convey("Then the run should stop with the error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "disk full")
			})
		})
	})

	Convey("Given a contest without voters", t, func() {
		ctx := context.Background()
		c := newContest(nil, []string{"Zed"}, []string{"Abba"})
		res, err := app.New().Run(ctx, c)

		Convey("Then the summary should keep load order", func() {
			So(err, ShouldBeNil)
			So(res.Rounds, ShouldBeEmpty)
			So(artists(res.Summary), ShouldResemble, []string{"Zed", "Abba"})
		})
	})

	Convey("Given a contest with a missing token", t, func() {
		ctx := context.Background()
		c := scenario()
		c.Entries[2].VoteTokens = c.Entries[2].VoteTokens[:1]
		res, err := app.New().Run(ctx, c)

		Convey("Then the run should fail at the broken round", func() {
			So(err, ShouldNotBeNil)
			So(res.Rounds, ShouldHaveLength, 1)
		})
	})
}

// flakyStore fails the next failSaves calls to Save.
type flakyStore struct {
	*repository.MemoryStore
	failSaves int
}

func (f *flakyStore) Save(ctx context.Context, snap repository.Snapshot) error {
	if f.failSaves > 0 {
		f.failSaves--
		return errors.New("disk full")
	}
	return f.MemoryStore.Save(ctx, snap)
}

func TestService_SaveFailure(t *testing.T) {
	Convey("Given a store that fails the first save", t, func() {
		ctx := context.Background()
		store := &flakyStore{MemoryStore: repository.NewMemoryStore(), failSaves: 1}
		svc := app.New(app.WithStore(store))
		c := newContest([]string{"V1"}, []string{"A", "5"}, []string{"B", "DQ"})

		Convey("When the round is processed", func() {
			_, err := svc.ProcessRound(ctx, c, 0)

			Convey("Then the error should surface and the entries be rolled back", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "disk full")
				So(c.Entries[0].TotalPoints, ShouldEqual, 0)
				So(c.Entries[0].DisplayPoints, ShouldEqual, 0)
				So(c.Entries[0].VotersCounted, ShouldEqual, 0)
				So(c.Entries[1].Disqualified, ShouldBeFalse)
				So(c.Entries[1].TotalPoints, ShouldEqual, 0)
			})

			Convey("And the round is retried", func() {
				_, retryErr := svc.ProcessRound(ctx, c, 0)

				Convey("Then it should count once and complete the contest", func() {
					So(retryErr, ShouldBeNil)
					So(c.Entries[0].TotalPoints, ShouldEqual, 5)
					So(c.Entries[0].VotersCounted, ShouldEqual, 1)
					rows, sumErr := svc.Summary(ctx)
					So(sumErr, ShouldBeNil)
					So(artists(rows), ShouldResemble, []string{"A", "B"})
				})
			})
		})
	})
}

func TestService_StoredQueries(t *testing.T) {
	Convey("Given a service", t, func() {
		ctx := context.Background()
		svc := app.New()
		c := scenario()

		Convey("When nothing was processed", func() {
			_, latestErr := svc.LastRound(ctx)
			_, leadersErr := svc.Leaders(ctx, 1)

			Convey("Then both lookups should report not found", func() {
				So(errors.Is(latestErr, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(leadersErr, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the contest was run", func() {
			_, err := svc.Run(ctx, c)
			So(err, ShouldBeNil)

			Convey("Then the last round should be the last voter", func() {
				snap, latestErr := svc.LastRound(ctx)
				So(latestErr, ShouldBeNil)
				So(snap.Voter, ShouldEqual, "V2")
			})

			Convey("Then the leaders should come from the stored summary", func() {
				top, leadersErr := svc.Leaders(ctx, 1)
				So(leadersErr, ShouldBeNil)
				So(top, ShouldHaveLength, 1)
				So(top[0].Artist, ShouldEqual, "A")
				So(top[0].Points, ShouldEqual, 8)
			})
		})
	})
}
