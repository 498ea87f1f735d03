package cleaning

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"responseclean/internal/config"
	"responseclean/internal/table"
)

func responses() *table.Table {
	return table.New(
		[]string{"id", "response", "full_response", "proximal"},
		[][]string{
			{"1", "fence", "the boy", "1"},
			{"2", "N_A", "", ""},
			{"3", "N_A", "mumbled", "NaN"},
			{"4", "mirror", "NA", "0"},
			{"5", "fan", "both", ""},
		},
		config.DefaultMissingValues(),
	)
}

func TestRemoveBlank(t *testing.T) {
	tbl := responses()
	n := tbl.Len()

	removed, err := RemoveBlank(tbl, "full_response")
	require.NoError(t, err)

	assert.Equal(t, 2, removed)
	assert.Equal(t, n-removed, tbl.Len())
	idx, _ := tbl.Column("full_response")
	for i := 0; i < tbl.Len(); i++ {
		assert.False(t, tbl.Missing(i, idx), "row %d", i)
	}
	assert.Equal(t, []string{"1", "3", "5"}, []string{tbl.Rows[0][0], tbl.Rows[1][0], tbl.Rows[2][0]})
}

func TestRemoveBlank_UnknownColumn(t *testing.T) {
	_, err := RemoveBlank(responses(), "nope")
	assert.ErrorIs(t, err, table.ErrNoColumn)
}

func TestFill(t *testing.T) {
	tbl := responses()

	filled, err := Fill(tbl, "proximal", "")
	require.NoError(t, err)
	assert.Equal(t, 3, filled)

	var got []string
	for _, row := range tbl.Rows {
		got = append(got, row[3])
	}
	assert.Equal(t, []string{"1", "0", "0", "0", "0"}, got)

	filled, err = Fill(tbl, "full_response", "?")
	require.NoError(t, err)
	assert.Equal(t, 2, filled)
	assert.Equal(t, "?", tbl.Rows[1][2])
	assert.Equal(t, "?", tbl.Rows[3][2])
}

func TestReportMissing(t *testing.T) {
	var buf bytes.Buffer
	n, err := ReportMissing(responses(), &buf, "response", "full_response")
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, "Line 1: nan\nLine 2: mumbled\n", buf.String())
}

func TestReportMissing_UnknownColumn(t *testing.T) {
	var buf bytes.Buffer
	_, err := ReportMissing(responses(), &buf, "answer", "full_response")
	assert.ErrorIs(t, err, table.ErrNoColumn)
	assert.Empty(t, buf.String())
}

func TestFilePasses(t *testing.T) {
	store := table.Store{MissingValues: config.DefaultMissingValues()}
	c := &Cleaner{Store: store}
	path := filepath.Join(t.TempDir(), "exp1_child.csv")
	require.NoError(t, store.Save(path, responses()))

	removed, err := c.RemoveBlankFile(path, "full_response")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	filled, err := c.FillFile(path, "proximal", "0")
	require.NoError(t, err)
	assert.Equal(t, 2, filled)

	var buf bytes.Buffer
	n, err := c.ReportMissingFile(path, &buf, "response", "full_response")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Line 1: mumbled\n", buf.String())

	got, err := store.Load(path)
	require.NoError(t, err)
	want := [][]string{
		{"id", "response", "full_response", "proximal"},
		{"1", "fence", "the boy", "1"},
		{"3", "N_A", "mumbled", "0"},
		{"5", "fan", "both", "0"},
	}
	if diff := cmp.Diff(want, got.Records()); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}
}

func TestFilePasses_MissingFile(t *testing.T) {
	c := &Cleaner{}
	_, err := c.FillFile(filepath.Join(t.TempDir(), "none.csv"), "proximal", "")
	assert.Error(t, err)
}
