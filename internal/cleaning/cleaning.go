// Package cleaning holds the small whole-file passes: dropping rows with a
// blank cell, filling blank cells with a default, and listing answers that
// were marked unusable.
package cleaning

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"responseclean/internal/logging"
	"responseclean/internal/table"
)

// DefaultFillValue is used by Fill when no value is given.
const DefaultFillValue = "0"

// NotAvailable marks a response that could not be transcribed.
const NotAvailable = "N_A"

// Cleaner runs the cleaning passes against files through Store.
type Cleaner struct {
	Store  table.Store
	Logger *zap.Logger
}

// RemoveBlank drops every row whose column cell is missing and returns the
// number of rows removed.
func RemoveBlank(t *table.Table, column string) (int, error) {
	idx, err := t.Column(column)
	if err != nil {
		return 0, err
	}
	return t.Filter(func(_ int, row []string) bool {
		return !t.IsMissing(row[idx])
	}), nil
}

// Fill replaces missing cells of column with value and returns how many
// cells changed. An empty value means DefaultFillValue.
func Fill(t *table.Table, column, value string) (int, error) {
	idx, err := t.Column(column)
	if err != nil {
		return 0, err
	}
	if value == "" {
		value = DefaultFillValue
	}
	filled := 0
	for i := 0; i < t.Len(); i++ {
		if t.Missing(i, idx) {
			t.Set(i, idx, value)
			filled++
		}
	}
	return filled, nil
}

// ReportMissing prints "Line <row>: <text>" to w for every row whose
// response column equals NotAvailable. Rows are numbered from zero in data
// order. It returns the number of rows printed.
func ReportMissing(t *table.Table, w io.Writer, responseColumn, textColumn string) (int, error) {
	respIdx, err := t.Column(responseColumn)
	if err != nil {
		return 0, err
	}
	textIdx, err := t.Column(textColumn)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := 0; i < t.Len(); i++ {
		if t.Get(i, respIdx) != NotAvailable {
			continue
		}
		text := t.Get(i, textIdx)
		if t.IsMissing(text) {
			text = "nan"
		}
		if _, err := fmt.Fprintf(w, "Line %d: %s\n", i, text); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// RemoveBlankFile runs RemoveBlank on the file at path, rewriting it.
func (c *Cleaner) RemoveBlankFile(path, column string) (int, error) {
	return c.RemoveBlankTo(path, path, column)
}

// RemoveBlankTo runs RemoveBlank on in and writes the result to out.
func (c *Cleaner) RemoveBlankTo(in, out, column string) (int, error) {
	t, err := c.Store.Load(in)
	if err != nil {
		return 0, err
	}
	removed, err := RemoveBlank(t, column)
	if err != nil {
		return 0, fmt.Errorf("remove blank rows from %s: %w", in, err)
	}
	if err := c.Store.Save(out, t); err != nil {
		return removed, err
	}
	logging.OrNop(c.Logger).Info("removed blank rows",
		zap.String("file", in), zap.String("column", column),
		zap.Int("removed", removed), zap.Int("remaining", t.Len()))
	return removed, nil
}

// FillFile runs Fill on the file at path, rewriting it.
func (c *Cleaner) FillFile(path, column, value string) (int, error) {
	t, err := c.Store.Load(path)
	if err != nil {
		return 0, err
	}
	filled, err := Fill(t, column, value)
	if err != nil {
		return 0, fmt.Errorf("fill %s: %w", path, err)
	}
	if err := c.Store.Save(path, t); err != nil {
		return filled, err
	}
	logging.OrNop(c.Logger).Info("filled missing values",
		zap.String("file", path), zap.String("column", column), zap.Int("filled", filled))
	return filled, nil
}

// ReportMissingFile runs ReportMissing on the file at path.
func (c *Cleaner) ReportMissingFile(path string, w io.Writer, responseColumn, textColumn string) (int, error) {
	t, err := c.Store.Load(path)
	if err != nil {
		return 0, err
	}
	n, err := ReportMissing(t, w, responseColumn, textColumn)
	if err != nil {
		return n, fmt.Errorf("report %s: %w", path, err)
	}
	return n, nil
}
