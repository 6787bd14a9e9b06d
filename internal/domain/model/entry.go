// Package model contains the contest data passed between layers.
package model

import "strings"

// Entry is one contestant being voted on. The identity fields and vote
// tokens are fixed at load time; the scoring fields are mutated in place by
// the scoring engine, one voter at a time.
type Entry struct {
	User    string // submitter handle
	Country string // country of origin
	Artist  string
	Song    string

	// VoteTokens holds the raw token each voter gave this entry, indexed
	// like Contest.Voters. An empty token means no vote was cast.
	VoteTokens []string

	// Seq is the position the entry had in the input file.
	Seq int

	// TotalPoints is the sort key. It is frozen at -1 once disqualified.
	TotalPoints int
	// DisplayPoints is the sum of every integer token seen so far,
	// disqualified or not.
	DisplayPoints int
	// VotersCounted is the number of voters whose token was an integer.
	VotersCounted int
	Disqualified  bool
}

// NewEntry builds an entry with trimmed identity fields. The token slice is
// copied so the caller's row can be reused.
func NewEntry(seq int, user, country, artist, song string, tokens []string) *Entry {
	vt := make([]string, len(tokens))
	copy(vt, tokens)
	return &Entry{
		User:       strings.TrimSpace(user),
		Country:    strings.TrimSpace(country),
		Artist:     strings.TrimSpace(artist),
		Song:       strings.TrimSpace(song),
		VoteTokens: vt,
		Seq:        seq,
	}
}

// Token returns the raw token for voterIndex and whether it exists.
func (e *Entry) Token(voterIndex int) (string, bool) {
	if voterIndex < 0 || voterIndex >= len(e.VoteTokens) {
		return "", false
	}
	return e.VoteTokens[voterIndex], true
}

// Title is "Artist - Song".
func (e *Entry) Title() string {
	return e.Artist + " - " + e.Song
}

// Scores is the part of an entry the scoring engine mutates.
type Scores struct {
	TotalPoints   int
	DisplayPoints int
	VotersCounted int
	Disqualified  bool
}

// Scores returns the current scoring state.
func (e *Entry) Scores() Scores {
	return Scores{
		TotalPoints:   e.TotalPoints,
		DisplayPoints: e.DisplayPoints,
		VotersCounted: e.VotersCounted,
		Disqualified:  e.Disqualified,
	}
}

// SetScores puts back a state taken with Scores.
func (e *Entry) SetScores(s Scores) {
	e.TotalPoints = s.TotalPoints
	e.DisplayPoints = s.DisplayPoints
	e.VotersCounted = s.VotersCounted
	e.Disqualified = s.Disqualified
}
