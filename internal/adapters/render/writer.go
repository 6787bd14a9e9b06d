package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/scoreboard/pkg/logger"
	"github.com/okian/scoreboard/pkg/metrics"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o640
)

// DirWriter renders reports into files under a directory:
// "<n> - <voter>.<ext>" for rounds and "<contest> - Summary.<ext>".
type DirWriter struct {
	dir      string
	renderer Renderer
	logger   logger.Logger
}

// NewDirWriter creates a writer. A nil logger discards output.
func NewDirWriter(dir string, r Renderer, l logger.Logger) *DirWriter {
	if l == nil {
		l = logger.Nop()
	}
	return &DirWriter{dir: dir, renderer: r, logger: l}
}

// FileName returns the file name a report is written to.
func (d *DirWriter) FileName(r Report) string {
	if r.IsSummary() {
		return fmt.Sprintf("%s - Summary.%s", SafeFileName(r.Contest), d.renderer.Ext())
	}
	return fmt.Sprintf("%d - %s.%s", r.Round+1, SafeFileName(r.Voter), d.renderer.Ext())
}

// Write renders r into its file, creating the directory when missing,
// and returns the file path.
func (d *DirWriter) Write(ctx context.Context, r Report) (string, error) {
	if err := os.MkdirAll(d.dir, directoryPermission); err != nil {
		metrics.RecordError("render", "mkdir")
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(d.dir, d.FileName(r))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		metrics.RecordError("render", "open")
		return "", fmt.Errorf("create report: %w", err)
	}

	if err := d.renderer.Render(ctx, f, r); err != nil {
		_ = f.Close()
		metrics.RecordError("render", "render")
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}

	metrics.RecordReportWritten(d.renderer.Format())
	d.logger.Debug(ctx, "report written", logger.String("path", path))
	return path, nil
}
