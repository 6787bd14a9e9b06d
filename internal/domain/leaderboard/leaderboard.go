// Package leaderboard turns a ranking into the rows shown to people.
package leaderboard

import (
	"strconv"

	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/internal/domain/types"
)

// SummaryRound is passed to Standings for the final summary, which shows
// positions instead of a single voter's tokens.
const SummaryRound = -1

// Ranked pairs an entry with its 1-based position.
type Ranked struct {
	Rank  int
	Entry *model.Entry
}

// TopN returns the first min(n, len(ranking)) entries with positional
// ranks. Entries with equal sort keys still get distinct ranks.
func TopN(ranking []*model.Entry, n int) []Ranked {
	if n <= 0 {
		return []Ranked{}
	}
	if n > len(ranking) {
		n = len(ranking)
	}
	out := make([]Ranked, n)
	for i := 0; i < n; i++ {
		out[i] = Ranked{Rank: i + 1, Entry: ranking[i]}
	}
	return out
}

// Standings converts a full ranking into rows. For a voter round the
// Awarded column holds that voter's raw token; for SummaryRound it is empty.
func Standings(ranking []*model.Entry, voterIndex int) []types.Standing {
	out := make([]types.Standing, len(ranking))
	for i, e := range ranking {
		s := types.Standing{
			Rank:         i + 1,
			User:         e.User,
			Country:      e.Country,
			Artist:       e.Artist,
			Song:         e.Song,
			Points:       e.DisplayPoints,
			Voters:       e.VotersCounted,
			Disqualified: e.Disqualified,
		}
		if voterIndex != SummaryRound {
			s.Awarded, _ = e.Token(voterIndex)
		}
		out[i] = s
	}
	return out
}

// Suffix returns the English ordinal suffix for n: st, nd, rd or th.
func Suffix(n int) string {
	if n < 0 {
		n = -n
	}
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// Ordinal formats n with its suffix, e.g. 22nd.
func Ordinal(n int) string {
	return strconv.Itoa(n) + Suffix(n)
}
