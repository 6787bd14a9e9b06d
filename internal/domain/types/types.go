// Package types contains the serializable rows shared by the reporter,
// the snapshot store and the renderers.
package types

// Standing is one ranked row of a leaderboard snapshot.
type Standing struct {
	Rank         int    `json:"rank" yaml:"rank"`
	User         string `json:"user" yaml:"user"`
	Country      string `json:"country" yaml:"country"`
	Artist       string `json:"artist" yaml:"artist"`
	Song         string `json:"song" yaml:"song"`
	Points       int    `json:"points" yaml:"points"`
	Awarded      string `json:"awarded,omitempty" yaml:"awarded,omitempty"`
	Voters       int    `json:"voters" yaml:"voters"`
	Disqualified bool   `json:"disqualified,omitempty" yaml:"disqualified,omitempty"`
}

// HasAward reports whether the round's voter left a token for this entry.
func (s Standing) HasAward() bool {
	return s.Awarded != ""
}

// Caption is the line shown for the entry: the country when countries
// are displayed, the submitting user otherwise.
func (s Standing) Caption(displayCountries bool) string {
	if displayCountries {
		return s.Country
	}
	return s.User
}

// Title is "Artist - Song", marked "(DQ)" once disqualified.
func (s Standing) Title() string {
	title := s.Artist + " - " + s.Song
	if s.Disqualified {
		title += " (DQ)"
	}
	return title
}
