package render

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/okian/scoreboard/internal/domain/leaderboard"
	"github.com/okian/scoreboard/internal/domain/scoring"
)

// TextRenderer draws a plain-text scoreboard.
type TextRenderer struct{}

func (TextRenderer) Format() string { return "text" }
func (TextRenderer) Ext() string    { return "txt" }

// awardLabel shows points as "+12", a disqualification as "DQ" and any
// other token as written.
func awardLabel(token string) string {
	v := scoring.ParseToken(token)
	switch v.Kind {
	case scoring.KindPoints:
		return fmt.Sprintf("%+d", v.Points)
	case scoring.KindDisqualify:
		return "DQ"
	default:
		return strings.TrimSpace(token)
	}
}

// Render writes the heading, the banner and one line per entry:
// position, caption, "Artist - Song", points and either the round's
// awarded token (see awardLabel) or, for the summary, the final place.
func (TextRenderer) Render(_ context.Context, w io.Writer, r Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", r.Heading())
	fmt.Fprintf(&b, "%s\n", r.Title())
	b.WriteString(strings.Repeat("=", len([]rune(r.Title()))))
	b.WriteString("\n\n")

	if len(r.Standings) == 0 {
		b.WriteString("No entries.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, s := range r.Standings {
		last := ""
		switch {
		case r.IsSummary():
			last = leaderboard.Ordinal(s.Rank)
		case s.HasAward():
			last = awardLabel(s.Awarded)
		}
		fmt.Fprintf(tw, "%d.\t%s\t%s\t%d\t%s\n", s.Rank, s.Caption(r.DisplayCountries), s.Title(), s.Points, last)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, b.String())
	return err
}
