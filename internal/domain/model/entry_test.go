package model_test

import (
	"errors"
	"testing"

	model "github.com/okian/scoreboard/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestEntry(t *testing.T) {
	convey.Convey("Given a row from the input file", t, func() {
		tokens := []string{"12", "", "DQ"}

		convey.Convey("When building an entry", func() {
			e := model.NewEntry(4, "  alice ", " Sweden", "Loreen  ", " Tattoo ", tokens)

			convey.Convey("Then identity fields should be trimmed", func() {
				convey.So(e.User, convey.ShouldEqual, "alice")
				convey.So(e.Country, convey.ShouldEqual, "Sweden")
				convey.So(e.Artist, convey.ShouldEqual, "Loreen")
				convey.So(e.Song, convey.ShouldEqual, "Tattoo")
				convey.So(e.Seq, convey.ShouldEqual, 4)
			})

			convey.Convey("And scoring state should start at zero", func() {
				convey.So(e.TotalPoints, convey.ShouldEqual, 0)
				convey.So(e.DisplayPoints, convey.ShouldEqual, 0)
				convey.So(e.VotersCounted, convey.ShouldEqual, 0)
				convey.So(e.Disqualified, convey.ShouldBeFalse)
			})

			convey.Convey("And the tokens should be copied", func() {
				tokens[0] = "1"
				convey.So(e.VoteTokens[0], convey.ShouldEqual, "12")
			})

			convey.Convey("And Token should bound-check the index", func() {
				tok, ok := e.Token(2)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(tok, convey.ShouldEqual, "DQ")

				_, ok = e.Token(3)
				convey.So(ok, convey.ShouldBeFalse)
				_, ok = e.Token(-1)
				convey.So(ok, convey.ShouldBeFalse)
			})

			convey.Convey("And Title should join artist and song", func() {
				convey.So(e.Title(), convey.ShouldEqual, "Loreen - Tattoo")
			})
		})
	})
}

func TestContest(t *testing.T) {
	convey.Convey("Given voters and entries", t, func() {
		voters := []string{"Bob", "Carol"}
		entries := []*model.Entry{
			model.NewEntry(0, "u1", "SE", "A", "a", []string{"5", "3"}),
			model.NewEntry(1, "u2", "NO", "B", "b", []string{"DQ", "10"}),
			model.NewEntry(2, "u3", "FI", "C", "c", []string{"", "7"}),
		}

		convey.Convey("When building a contest", func() {
			c, err := model.NewContest(" Melbourne ", voters, entries,
				model.WithDisplayFlags(true), model.WithDisplayCountries(true))

			convey.Convey("Then counts should be derived", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(c.Name, convey.ShouldEqual, "Melbourne")
				convey.So(c.VoterCount(), convey.ShouldEqual, 2)
				convey.So(c.EntryCount(), convey.ShouldEqual, 3)
				convey.So(c.DisplayFlags, convey.ShouldBeTrue)
				convey.So(c.DisplayCountries, convey.ShouldBeTrue)
				convey.So(c.Voter(1), convey.ShouldEqual, "Carol")
				convey.So(c.Voter(2), convey.ShouldEqual, "")
			})
		})

		convey.Convey("When an entry is missing a token", func() {
			entries = append(entries, model.NewEntry(3, "u4", "DK", "D", "d", []string{"1"}))
			c, err := model.NewContest("Melbourne", voters, entries)

			convey.Convey("Then construction should fail", func() {
				convey.So(c, convey.ShouldBeNil)
				convey.So(errors.Is(err, model.ErrTokenCount), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the name is blank", func() {
			_, err := model.NewContest("   ", voters, entries)

			convey.Convey("Then construction should fail", func() {
				convey.So(errors.Is(err, model.ErrEmptyName), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When there are no voters and no entries", func() {
			c, err := model.NewContest("Empty", nil, nil)

			convey.Convey("Then an empty contest should be valid", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(c.VoterCount(), convey.ShouldEqual, 0)
				convey.So(c.EntryCount(), convey.ShouldEqual, 0)
			})
		})
	})
}

func TestEntry_Scores(t *testing.T) {
	convey.Convey("Given an entry with scoring state", t, func() {
		e := model.NewEntry(0, "u1", "SE", "Loreen", "Tattoo", []string{"12"})
		e.TotalPoints, e.DisplayPoints, e.VotersCounted = 12, 12, 1
		saved := e.Scores()

		convey.Convey("When the state changes and is put back", func() {
			e.TotalPoints, e.DisplayPoints, e.VotersCounted, e.Disqualified = -1, 20, 2, true
			e.SetScores(saved)

			convey.Convey("Then the entry should be as it was", func() {
				convey.So(e.Scores(), convey.ShouldResemble, model.Scores{TotalPoints: 12, DisplayPoints: 12, VotersCounted: 1})
				convey.So(e.Disqualified, convey.ShouldBeFalse)
			})
		})
	})
}
