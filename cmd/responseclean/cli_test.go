package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"responseclean/internal/config"
	"responseclean/internal/table"
)

// execute runs the root command with args and a config file that does not
// exist, so defaults apply.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		cleanVariant, cleanReport = "", false
		codeVariant, fillValue = "", ""
		renameTag, renameDryRun, renameSkipPrefixed = "", false, false
		configForce = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	noConfig := filepath.Join(t.TempDir(), "none.yaml")
	rootCmd.SetArgs(append([]string{"--config", noConfig}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDataset(t *testing.T, path string) {
	t.Helper()
	header := []string{"scenario_order", "gender_order", "response", "full_response"}
	var rows [][]string
	for _, text := range []string{"both", "sophia", "bobby", "hmm", "the girl", "neither"} {
		rows = append(rows, []string{"wall_first", "girl", "x", text})
	}
	rows[3][2] = "N_A"
	require.NoError(t, table.Store{}.Save(path, table.New(header, rows, nil)))
}

func TestCleanCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "exp2_child.csv")
	out := filepath.Join(dir, "exp2_child_clean.csv")
	writeDataset(t, in)

	stdout, err := execute(t, "clean", "--report", in, out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Line 3: hmm")
	assert.Contains(t, stdout, "Cleaning succeeded")

	got, err := table.Store{}.Load(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"scenario_order", "gender_order", "response", "full_response", "scenario", "direct", "absent"}, got.Header)
	assert.Equal(t, []string{"wall_first", "girl", "N_A", "hmm", "window", "0", "0"}, got.Rows[3])
}

func TestCleanCommand_BadVariant(t *testing.T) {
	_, err := execute(t, "clean", "--variant", "exp7", "a.csv", "b.csv")
	assert.Error(t, err)
}

func TestSinglePassCommands(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "sheet.csv")
	labelled := filepath.Join(dir, "labelled.csv")
	writeDataset(t, in)

	stdout, err := execute(t, "label", in, labelled)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Labelled 6 rows in 1 blocks")

	stdout, err = execute(t, "code", "--variant", "exp1", labelled, labelled)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Coded 5 of 6 rows (exp1)")

	stdout, err = execute(t, "fill", "--value", "9", labelled, "proximal")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Filled 2 cells")

	stdout, err = execute(t, "check", labelled)
	require.NoError(t, err)
	assert.Equal(t, "Line 3: hmm\n", stdout)

	got, err := table.Store{}.Load(labelled)
	require.NoError(t, err)
	assert.Equal(t, []string{"wall_first", "girl", "x", "the girl", "window", "9", "1"}, got.Rows[4])

	stdout, err = execute(t, "drop-blank", labelled, "distal")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed 1 rows")
}

func TestRenameCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp4"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	stdout, err := execute(t, "rename", "--tag", "exp1", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Renamed 1 files"))

	_, err = os.Stat(filepath.Join(dir, "exp1_a.mp4"))
	assert.NoError(t, err)
}

func TestRenameCommand_SkipPrefixed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exp2_intro.mp4"), nil, 0644))

	_, err := execute(t, "rename", "--skip-prefixed", dir)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "exp2_intro.mp4"))
	assert.NoError(t, err)

	_, err = execute(t, "rename", dir)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "exp2_exp2_intro.mp4"))
	assert.NoError(t, err)
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responseclean.yaml")

	stdout, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	_, err = execute(t, "config", "init", path)
	assert.Error(t, err, "existing file must not be overwritten")

	_, err = execute(t, "config", "init", "--force", path)
	assert.NoError(t, err)
}

func TestMissingInputFails(t *testing.T) {
	_, err := execute(t, "label", filepath.Join(t.TempDir(), "none.csv"), "out.csv")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
