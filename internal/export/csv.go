package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"wordrank/internal/fileutil"
	"wordrank/internal/wordfreq"
)

// Header names the exported columns.
var Header = []string{"word", "count"}

// ErrMalformedTable is returned when a CSV does not look like an exported ranking.
var ErrMalformedTable = errors.New("malformed word table")

// Row is one exported record.
type Row struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Options controls serialization.
type Options struct {
	// IncludeIndex writes the 0-based row position as an unnamed first column.
	IncludeIndex bool
}

// Rows converts ranked entries into export rows, preserving order.
func Rows(entries []wordfreq.Entry) []Row {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{Word: e.Word, Count: e.Count}
	}
	return rows
}

// Entries converts rows back into ranked entries.
func Entries(rows []Row) []wordfreq.Entry {
	entries := make([]wordfreq.Entry, len(rows))
	for i, r := range rows {
		entries[i] = wordfreq.Entry{Word: r.Word, Count: r.Count}
	}
	return entries
}

// WriteCSV writes the header and one record per row. Fields are quoted only
// when they contain a comma, quote, or line break.
func WriteCSV(w io.Writer, rows []Row, opts Options) error {
	cw := csv.NewWriter(w)
	header := Header
	if opts.IncludeIndex {
		header = append([]string{""}, Header...)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, 0, 3)
	for i, row := range rows {
		record = record[:0]
		if opts.IncludeIndex {
			record = append(record, strconv.Itoa(i))
		}
		record = append(record, row.Word, strconv.Itoa(row.Count))
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteFile atomically replaces path with the CSV table.
func WriteFile(ctx context.Context, path string, rows []Row, opts Options) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("export path is required")
	}
	return fileutil.WithLock(ctx, path, func() error {
		return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
			return WriteCSV(w, rows, opts)
		})
	})
}

// ReadCSV parses an exported table. A leading index column is detected from
// the header and skipped.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedTable)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	wordCol, countCol, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	rows := []Row{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrMalformedTable, line, len(record), len(header))
		}
		count, err := strconv.Atoi(record[countCol])
		if err != nil || count < 1 {
			return nil, fmt.Errorf("%w: line %d count %q is not a positive integer", ErrMalformedTable, line, record[countCol])
		}
		rows = append(rows, Row{Word: record[wordCol], Count: count})
	}
	return rows, nil
}

// ReadFile opens path and parses it with ReadCSV.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func locateColumns(header []string) (int, int, error) {
	wordCol, countCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case "word":
			wordCol = i
		case "count":
			countCol = i
		}
	}
	if wordCol < 0 || countCol < 0 {
		return 0, 0, fmt.Errorf("%w: header %q lacks word and count columns", ErrMalformedTable, header)
	}
	return wordCol, countCol, nil
}

// Sum returns the total of the count column.
func Sum(rows []Row) int {
	total := 0
	for _, r := range rows {
		total += r.Count
	}
	return total
}
