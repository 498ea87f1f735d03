// Package table holds a CSV dataset in memory as ordered string rows.
//
// Cells stay text end to end so that values the cleaning passes never touch
// are written back exactly as they were read. A cell is "missing" when its
// trimmed text is one of the table's missing tokens.
package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoColumn is returned when a required column is absent from the header.
	ErrNoColumn = errors.New("no such column")
	// ErrEmptyHeader is returned for a file without a header row.
	ErrEmptyHeader = errors.New("empty header")
	// ErrBadHeader is returned for a header with an empty or repeated name.
	ErrBadHeader = errors.New("invalid header")
)

// Table is a header plus rows. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string

	missing map[string]struct{}
}

// New builds a table. Short rows are padded with empty cells. missingValues
// lists the tokens read as missing; nil means only the empty string.
func New(header []string, rows [][]string, missingValues []string) *Table {
	t := &Table{
		Header:  append([]string(nil), header...),
		Rows:    make([][]string, 0, len(rows)),
		missing: missingSet(missingValues),
	}
	for _, r := range rows {
		row := make([]string, len(header))
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	return t
}

func missingSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values)+1)
	set[""] = struct{}{}
	for _, v := range values {
		set[strings.TrimSpace(v)] = struct{}{}
	}
	return set
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	for i, col := range t.Header {
		if strings.TrimSpace(col) == name {
			return i
		}
	}
	return -1
}

// Column returns the position of column name or an ErrNoColumn error.
func (t *Table) Column(name string) (int, error) {
	idx := t.Index(name)
	if idx == -1 {
		return -1, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	return idx, nil
}

// EnsureColumn returns the position of column name, appending it with
// empty cells when absent.
func (t *Table) EnsureColumn(name string) int {
	if idx := t.Index(name); idx != -1 {
		return idx
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return len(t.Header) - 1
}

// RenameColumn renames column from to to. Renaming an absent column is an
// ErrNoColumn error.
func (t *Table) RenameColumn(from, to string) error {
	idx, err := t.Column(from)
	if err != nil {
		return err
	}
	t.Header[idx] = to
	return nil
}

// Get returns the cell at row i, column col.
func (t *Table) Get(i, col int) string { return t.Rows[i][col] }

// Set stores v at row i, column col.
func (t *Table) Set(i, col int, v string) { t.Rows[i][col] = v }

// IsMissing reports whether v is a missing token.
func (t *Table) IsMissing(v string) bool {
	set := t.missing
	if set == nil {
		set = missingSet(nil)
	}
	_, ok := set[strings.TrimSpace(v)]
	return ok
}

// Missing reports whether the cell at row i, column col is missing.
func (t *Table) Missing(i, col int) bool { return t.IsMissing(t.Rows[i][col]) }

// Filter keeps the rows for which keep returns true and returns how many
// rows were dropped. Row order is preserved.
func (t *Table) Filter(keep func(i int, row []string) bool) int {
	kept := t.Rows[:0]
	dropped := 0
	for i, row := range t.Rows {
		if keep(i, row) {
			kept = append(kept, row)
			continue
		}
		dropped++
	}
	for i := len(kept); i < len(t.Rows); i++ {
		t.Rows[i] = nil
	}
	t.Rows = kept
	return dropped
}

// Records returns the header followed by every row.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Header)
	return append(out, t.Rows...)
}
