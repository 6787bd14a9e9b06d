package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/okian/scoreboard/internal/adapters/loader"
	"github.com/okian/scoreboard/internal/adapters/render"
	app "github.com/okian/scoreboard/internal/app"
	"github.com/okian/scoreboard/internal/config"
	"github.com/okian/scoreboard/internal/domain/dedupe"
	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/logger"
	"github.com/okian/scoreboard/pkg/metrics"
)

type runFlags struct {
	flags       bool
	countries   bool
	mainColor   string
	accentColor string
	top         int
	out         string
	format      string
	metricsFile string
	logLevel    string
	logFormat   string
	delimiter   string
}

func newRootCmd() *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:           "scoreboard <file> <contest-name>",
		Short:         "Replay a song contest vote by vote and write a scoreboard per voter",
		Version:       version,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return exitError(1, "failed to load config: %v", err)
			}
			if err := f.apply(cmd, cfg); err != nil {
				return exitError(1, "%v", err)
			}
			return runContest(cmd.Context(), cfg, args[0], args[1], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&f.flags, "flags", "f", false, "Show country flags in the reports")
	flags.BoolVarP(&f.countries, "countries", "c", false, "Caption entries by country instead of user")
	flags.StringVar(&f.mainColor, "main", "", "Main header color (hex, e.g. #2f292b)")
	flags.StringVar(&f.accentColor, "accent", "", "Accent color (hex, e.g. #009688)")
	flags.IntVar(&f.top, "top", 0, "Number of leaders logged after each round")
	flags.StringVar(&f.out, "out", "", "Output directory for the reports")
	flags.StringVar(&f.format, "format", "", "Report format: text, json or yaml")
	flags.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	flags.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&f.logFormat, "log-format", "", "Log format: text or json")
	flags.StringVarP(&f.delimiter, "delimiter", "d", "", "Input field delimiter (default: sniffed from the first line)")

	return cmd
}

// apply copies explicitly set flags over the loaded config.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("flags") {
		cfg.DisplayFlags = f.flags
	}
	if changed("countries") {
		cfg.DisplayCountries = f.countries
	}
	if changed("main") {
		cfg.MainColor = f.mainColor
	}
	if changed("accent") {
		cfg.AccentColor = f.accentColor
	}
	if changed("top") {
		cfg.TopN = f.top
	}
	if changed("out") {
		cfg.OutputDir = f.out
	}
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if changed("delimiter") {
		cfg.Delimiter = f.delimiter
	}
	return cfg.Validate()
}

func runContest(ctx context.Context, cfg *config.Config, path, name string, stdout, logOut io.Writer) error {
	if err := logger.InitWithWriter(logOut, cfg.LogFormat); err != nil {
		return exitError(1, "failed to initialize logging: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithHistogramBuckets(cfg.MetricsBuckets),
		metrics.WithConstLabels(map[string]string{"contest": name}),
	)

	loaderOpts := []loader.Option{loader.WithLogger(log.Named("loader"))}
	if delim, _ := cfg.DelimiterRune(); delim != 0 {
		loaderOpts = append(loaderOpts, loader.WithDelimiter(delim))
	}
	contest, err := loader.New(loaderOpts...).LoadFile(ctx, path, name,
		model.WithDisplayFlags(cfg.DisplayFlags),
		model.WithDisplayCountries(cfg.DisplayCountries),
	)
	if err != nil {
		metrics.RecordError("loader", "load")
		return exitError(1, "failed to load contest: %v", err)
	}

	renderer, err := render.New(cfg.Format)
	if err != nil {
		return exitError(1, "%v", err)
	}

	svc := app.New(
		app.WithLogger(log.Named("app")),
		app.WithTopN(cfg.TopN),
		app.WithDeduper(dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(contest.VoterCount()))),
		app.WithTheme(render.Theme{Main: cfg.MainColor, Accent: cfg.AccentColor}),
		app.WithRenderer(render.NewDirWriter(cfg.OutputDir, renderer, log.Named("render"))),
	)

	res, runErr := svc.Run(ctx, contest)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error(ctx, "metrics export failed", logger.String("path", cfg.MetricsFile), logger.Error(err))
		}
	}

	if runErr != nil {
		if last, err := svc.LastRound(ctx); err == nil {
			log.Warn(ctx, "contest run stopped", logger.Int("last_round", last.Round+1), logger.String("last_voter", last.Voter))
		}
		return exitError(1, "contest run failed: %v", runErr)
	}

	abs, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		abs = cfg.OutputDir
	}
	log.Info(ctx, "reports written",
		logger.String("dir", abs),
		logger.Int("count", len(res.Reports)),
		logger.String("run_id", res.RunID),
	)
	leaders, err := svc.Leaders(ctx, 1)
	if err != nil {
		return exitError(1, "read summary: %v", err)
	}
	if len(leaders) > 0 {
		winner := leaders[0]
		fmt.Fprintf(stdout, "%s - %s wins %s with %d points\n", winner.Artist, winner.Song, contest.Name, winner.Points)
	}
	return nil
}
