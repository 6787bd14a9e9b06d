package model

import (
	"fmt"
	"strings"
)

// Contest owns the ordered voters and the entries they vote on.
type Contest struct {
	Name    string
	Voters  []string
	Entries []*Entry

	DisplayFlags     bool
	DisplayCountries bool
}

// Option applies a presentation setting to a Contest.
type Option func(*Contest)

// WithDisplayFlags toggles flag display in renderers.
func WithDisplayFlags(on bool) Option {
	return func(c *Contest) { c.DisplayFlags = on }
}

// WithDisplayCountries shows countries instead of users in renderers.
func WithDisplayCountries(on bool) Option {
	return func(c *Contest) { c.DisplayCountries = on }
}

// NewContest validates that every entry carries exactly one token per voter
// and returns the assembled contest.
func NewContest(name string, voters []string, entries []*Entry, opts ...Option) (*Contest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	for _, e := range entries {
		if len(e.VoteTokens) != len(voters) {
			return nil, fmt.Errorf("%w: entry %d (%s) has %d tokens for %d voters",
				ErrTokenCount, e.Seq, e.Artist, len(e.VoteTokens), len(voters))
		}
	}

	c := &Contest{
		Name:    name,
		Voters:  append([]string(nil), voters...),
		Entries: entries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// VoterCount is the number of voting rounds.
func (c *Contest) VoterCount() int { return len(c.Voters) }

// EntryCount is the number of entries.
func (c *Contest) EntryCount() int { return len(c.Entries) }

// Voter returns the voter name for a round, or "" when out of range.
func (c *Contest) Voter(voterIndex int) string {
	if voterIndex < 0 || voterIndex >= len(c.Voters) {
		return ""
	}
	return c.Voters[voterIndex]
}
