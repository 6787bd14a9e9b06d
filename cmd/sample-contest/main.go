package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/scoreboard/internal/samplecontest"
	"github.com/okian/scoreboard/pkg/logger"
)

// Default configuration constants.
const (
	defaultEntries = 26
	defaultVoters  = 10
	defaultDQRate  = 0.05
	defaultOutput  = "sample_contest.csv"
	defaultTimeout = time.Minute
)

func main() {
	var (
		entries   = flag.Int("entries", defaultEntries, "Number of entries")
		voters    = flag.Int("voters", defaultVoters, "Number of voters")
		dqRate    = flag.Float64("dq", defaultDQRate, "Probability that a voter disqualifies one entry")
		out       = flag.String("out", defaultOutput, "Output file")
		delimiter = flag.String("delimiter", ",", "Field delimiter (one character)")
		seed      = flag.Uint64("seed", 0, "Random seed (0 picks one)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	delim := ','
	if r := []rune(*delimiter); len(r) == 1 {
		delim = r[0]
	} else {
		logger.Get().Warn(ctx, "delimiter must be one character; using comma", logger.String("delimiter", *delimiter))
	}

	cfg := &samplecontest.Config{
		Entries:    *entries,
		Voters:     *voters,
		DQRate:     *dqRate,
		Delimiter:  delim,
		OutputFile: *out,
		Seed:       *seed,
	}
	if _, err := samplecontest.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "sample contest generation failed", logger.Error(err))
		os.Exit(1)
	}
}
