package samplecontest

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// PointSet is the Eurovision scale each voter hands out, best first.
var PointSet = []int{12, 10, 8, 7, 6, 5, 4, 3, 2, 1}

const disqualifyToken = "DQ"

var countries = []string{
	"Sweden", "Finland", "Israel", "Italy", "Norway", "Ukraine", "Belgium",
	"Estonia", "Australia", "Czechia", "Lithuania", "Cyprus", "Croatia",
	"Armenia", "Austria", "France", "Spain", "Moldova", "Poland", "Switzerland",
	"Slovenia", "Albania", "Portugal", "Serbia", "United Kingdom", "Germany",
}

var voterNames = []string{
	"Alice", "Bob", "Chloé", "Dmitri", "Eva", "Farid", "Greta", "Hugo",
	"Ines", "Jonas", "Käthe", "Luca", "Maja", "Niko", "Oona", "Pável",
}

// Sheet is a generated contest as rows of cells, header first. Column 0
// holds the row number and column 5 is a free-form notes column, matching
// the layout the loader expects.
type Sheet struct {
	Header []string
	Rows   [][]string
}

// Generate builds a contest sheet. Every voter gives each value of
// PointSet to a distinct random entry (fewer when there are fewer
// entries) and, with probability cfg.DQRate, disqualifies one entry that
// received no points from them.
func Generate(cfg *Config) (*Sheet, Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Stats{}, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	sheet := &Sheet{
		Header: append([]string{"#", "User", "Country", "Artist", "Song", "Notes"}, voters(cfg.Voters)...),
		Rows:   make([][]string, cfg.Entries),
	}
	for i := range sheet.Rows {
		row := make([]string, len(sheet.Header))
		row[0] = strconv.Itoa(i + 1)
		row[1] = "user-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
		row[2] = countries[i%len(countries)]
		row[3] = fmt.Sprintf("Artist %d", i+1)
		row[4] = fmt.Sprintf("Song %d", i+1)
		sheet.Rows[i] = row
	}

	stats := Stats{Entries: cfg.Entries, Voters: cfg.Voters}
	for v := 0; v < cfg.Voters; v++ {
		col := 6 + v
		order := rng.Perm(cfg.Entries)
		awarded := min(len(PointSet), cfg.Entries)
		for i := 0; i < awarded; i++ {
			sheet.Rows[order[i]][col] = strconv.Itoa(PointSet[i])
			stats.PointsAwarded += PointSet[i]
		}
		if awarded < cfg.Entries && rng.Float64() < cfg.DQRate {
			target := order[awarded+rng.IntN(cfg.Entries-awarded)]
			sheet.Rows[target][col] = disqualifyToken
			stats.Disqualifications++
		}
	}

	return sheet, stats, nil
}

// voters returns n voter names, numbering repeats once the list runs out.
func voters(n int) []string {
	out := make([]string, n)
	for i := range out {
		name := voterNames[i%len(voterNames)]
		if i >= len(voterNames) {
			name = fmt.Sprintf("%s %d", name, i/len(voterNames)+1)
		}
		out[i] = name
	}
	return out
}
