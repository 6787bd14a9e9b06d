// Package loader reads contest tables from delimited files.
//
// Layout after the first column of every row is discarded:
//
//	row 0:  _     _        _       _     _   voter1  voter2 ...
//	row n:  user  country  artist  song  _   token1  token2 ...
package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/logger"
)

// Column positions after the leading column is dropped.
const (
	colUser = iota
	colCountry
	colArtist
	colSong
	colReserved
	colFirstVote
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets the loader logger.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithDelimiter disables sniffing and uses d.
func WithDelimiter(d rune) Option {
	return func(ld *Loader) {
		ld.delimiter = d
	}
}

// Loader turns a delimited file into a model.Contest.
type Loader struct {
	logger    logger.Logger
	delimiter rune // zero means sniff
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	ld := &Loader{logger: logger.Nop()}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// LoadFile reads path and builds a contest named name.
func (ld *Loader) LoadFile(ctx context.Context, path, name string, opts ...model.Option) (*model.Contest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open contest file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ld.Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c, err := Build(name, rows, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ld.logger.Info(ctx, "contest loaded",
		logger.String("file", path),
		logger.String("contest", c.Name),
		logger.Int("entries", c.EntryCount()),
		logger.Int("voters", c.VoterCount()))
	return c, nil
}

// Read parses delimited rows from r and drops the first column of each.
// Contest files are small, so the input is read whole.
func (ld *Loader) Read(ctx context.Context, r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	delim := ld.delimiter
	if delim == 0 {
		line, _, _ := bytes.Cut(data, []byte("\n"))
		delim = SniffDelimiter(strings.TrimRight(string(line), "\r"))
		ld.logger.Debug(ctx, "delimiter sniffed", logger.String("delimiter", string(delim)))
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec[1:])
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	return rows, nil
}

// Build creates a contest from rows whose first column was already
// dropped. Data rows must be as wide as the header; rows whose cells are
// all blank are skipped.
func Build(name string, rows [][]string, opts ...model.Option) (*model.Contest, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	header := rows[0]
	if len(header) < colFirstVote {
		return nil, fmt.Errorf("%w: %d columns, need at least %d", ErrNoHeader, len(header), colFirstVote)
	}
	voters := make([]string, 0, len(header)-colFirstVote)
	for _, v := range header[colFirstVote:] {
		voters = append(voters, strings.TrimSpace(v))
	}

	entries := make([]*model.Entry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		if len(row) != len(header) {
			// +2: one for the header, one for 1-based line numbers
			return nil, fmt.Errorf("%w: row %d has %d columns, header has %d", ErrRowWidth, i+2, len(row), len(header))
		}
		entries = append(entries, model.NewEntry(len(entries),
			row[colUser], row[colCountry], row[colArtist], row[colSong], row[colFirstVote:]))
	}

	return model.NewContest(name, voters, entries, opts...)
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
