package samplecontest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/scoreboard/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0640
)

// Write encodes sheet to w using delim (',' when zero).
func Write(w io.Writer, sheet *Sheet, delim rune) error {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}
	if err := cw.Write(sheet.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(sheet.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// Run generates a contest per cfg and writes it to cfg.OutputFile.
func Run(ctx context.Context, cfg *Config) (Stats, error) {
	sheet, stats, err := Generate(cfg)
	if err != nil {
		return Stats{}, err
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return Stats{}, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return Stats{}, fmt.Errorf("create output file: %w", err)
	}
	if err := Write(f, sheet, cfg.Delimiter); err != nil {
		_ = f.Close()
		return Stats{}, err
	}
	if err := f.Close(); err != nil {
		return Stats{}, fmt.Errorf("close output file: %w", err)
	}

	logger.Get().Info(ctx, "sample contest written",
		logger.String("file", cfg.OutputFile),
		logger.Int("entries", stats.Entries),
		logger.Int("voters", stats.Voters),
		logger.Int("points", stats.PointsAwarded),
		logger.Int("disqualifications", stats.Disqualifications))
	return stats, nil
}
