// Package render draws leaderboard snapshots as text, JSON or YAML and
// writes them to an output directory.
package render

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/okian/scoreboard/internal/domain/types"
)

// SummaryRound marks a report as the final summary.
const SummaryRound = -1

// Theme carries the configured colors. Renderers that cannot use colors
// pass them through as metadata.
type Theme struct {
	Main   string `json:"main" yaml:"main"`
	Accent string `json:"accent" yaml:"accent"`
}

// Report is everything a renderer needs to draw one leaderboard.
type Report struct {
	RunID            string           `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Contest          string           `json:"contest" yaml:"contest"`
	Round            int              `json:"round" yaml:"round"` // 0-based voter index or SummaryRound
	Voter            string           `json:"voter,omitempty" yaml:"voter,omitempty"`
	VoterCount       int              `json:"voter_count" yaml:"voter_count"`
	DisplayFlags     bool             `json:"display_flags" yaml:"display_flags"`
	DisplayCountries bool             `json:"display_countries" yaml:"display_countries"`
	Theme            Theme            `json:"theme" yaml:"theme"`
	GeneratedAt      time.Time        `json:"generated_at" yaml:"generated_at"`
	Standings        []types.Standing `json:"standings" yaml:"standings"`
}

// IsSummary reports whether r is the final summary.
func (r Report) IsSummary() bool { return r.Round == SummaryRound }

// Heading is the top bar line: "Now Voting: <voter> (i/n)" or "Final Results".
func (r Report) Heading() string {
	if r.IsSummary() {
		return "Final Results"
	}
	return fmt.Sprintf("Now Voting: %s (%d/%d)", r.Voter, r.Round+1, r.VoterCount)
}

// Title is the contest banner line.
func (r Report) Title() string {
	return r.Contest + " Results"
}

// Renderer draws a report.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, r Report) error
	// Format is the config name of the renderer (text, json, yaml).
	Format() string
	// Ext is the file extension without the dot.
	Ext() string
}

// New returns the renderer for format.
func New(format string) (Renderer, error) {
	switch format {
	case "text", "":
		return TextRenderer{}, nil
	case "json":
		return JSONRenderer{}, nil
	case "yaml":
		return YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
