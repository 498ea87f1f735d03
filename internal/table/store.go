package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Store reads and writes tables as delimited text files.
type Store struct {
	// Comma is the field delimiter; zero means ','.
	Comma rune
	// MissingValues lists the tokens that tables loaded by this store read
	// as missing.
	MissingValues []string
}

func (s Store) comma() rune {
	if s.Comma == 0 {
		return ','
	}
	return s.Comma
}

// Load reads the whole file at path into memory.
func (s Store) Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	t, err := s.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses a header row followed by data rows. Every column is read as
// text; gota's NaN substitution is disabled so cells round-trip verbatim.
// Empty or repeated column names are rejected because gota would rename them.
func (s Store) Read(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyHeader
	}

	/* Header --------------------------------------------------------------- */
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = s.comma()
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}
	// gota refuses a frame without rows; a header-only file is a valid
	// empty table.
	if _, err := cr.Read(); err == io.EOF {
		return New(header, nil, s.MissingValues), nil
	}

	/* Rows ----------------------------------------------------------------- */
	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.WithDelimiter(s.comma()),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse csv: %w", df.Err)
	}

	records := df.Records()
	return New(header, records[1:], s.MissingValues), nil
}

func checkHeader(header []string) error {
	seen := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.TrimSpace(col)
		if name == "" {
			return fmt.Errorf("%w: column %d has no name", ErrBadHeader, i+1)
		}
		if j, dup := seen[name]; dup {
			return fmt.Errorf("%w: column %q appears at %d and %d", ErrBadHeader, name, j+1, i+1)
		}
		seen[name] = i
	}
	return nil
}

// Save writes t to path, truncating any existing file.
func (s Store) Save(path string, t *Table) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := s.Write(out, t); err != nil {
		out.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return out.Close()
}

// Write encodes t as delimited text.
func (s Store) Write(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	writer := csv.NewWriter(bw)
	writer.Comma = s.comma()

	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			// +2: one-based, header is line 1
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return bw.Flush()
}
