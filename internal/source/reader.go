// Package source reads the delimited exports produced by each ratings site
// into loosely typed records. Column meaning is left to the provider
// packages; this layer only guarantees a well-formed table.
package source

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrSourceUnavailable marks a source file that is missing or unreadable.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSourceMalformed marks a source whose tabular structure cannot be parsed.
	ErrSourceMalformed = errors.New("source malformed")
)

// Spec identifies one tabular source on disk.
type Spec struct {
	Name       string // e.g. "torvik"
	Path       string
	NameColumn string // column holding the raw team name
}

// Record is one data row keyed by header column.
type Record struct {
	Line   int
	Fields map[string]string
}

// Get returns the value for col and whether the column exists.
func (r Record) Get(col string) (string, bool) {
	v, ok := r.Fields[col]
	return v, ok
}

// Value returns the value for col, or "" when the column is absent.
func (r Record) Value(col string) string {
	v, _ := r.Get(col)
	return v
}

// Read loads the source described by spec and checks its name column.
func Read(spec Spec) ([]Record, error) {
	header, records, err := ReadCSV(spec.Path)
	if err != nil {
		return nil, err
	}
	if spec.NameColumn != "" && !contains(header, spec.NameColumn) {
		return nil, errors.Mark(
			errors.Newf("%s source %s: missing team name column %q", spec.Name, spec.Path, spec.NameColumn),
			ErrSourceMalformed,
		)
	}
	return records, nil
}

// ReadCSV parses a comma-delimited file with a header row.
func ReadCSV(path string) ([]string, []Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Mark(errors.Wrapf(err, "open source %s", path), ErrSourceUnavailable)
	}
	defer f.Close()

	header, records, err := parse(f)
	if err != nil {
		return nil, nil, errors.Mark(errors.Wrapf(err, "parse source %s", path), ErrSourceMalformed)
	}
	return header, records, nil
}

func parse(r io.Reader) ([]string, []Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, errors.New("empty file: no header row")
	}
	if err != nil {
		return nil, nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError carries the line and the column-count mismatch.
			return nil, nil, err
		}
		if blank(row) {
			continue
		}
		line, _ := cr.FieldPos(0)
		fields := make(map[string]string, len(header))
		for i, col := range header {
			fields[col] = strings.TrimSpace(row[i])
		}
		records = append(records, Record{Line: line, Fields: fields})
	}
	return header, records, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
