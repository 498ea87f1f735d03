// Package rename prefixes the files of a directory with a condition tag.
package rename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"responseclean/internal/logging"
)

// ErrNotDirectory is returned when the target path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Renamer renames every regular file in a directory to <Tag>_<name>.
// Subdirectories are left alone and not descended into.
type Renamer struct {
	Tag string
	// SkipPrefixed leaves files already starting with "<Tag>_" alone, so a
	// second run is a no-op.
	SkipPrefixed bool
	DryRun       bool
	Logger *zap.Logger
}

// Result lists the outcome per file name.
type Result struct {
	Renamed   []string // new names
	Skipped   []string // not a regular file, or already prefixed with SkipPrefixed
	Conflicts []string // target name already taken
}

// Rename applies the prefix to the files in dir. A file whose target name
// already exists is never overwritten; it is reported in Conflicts.
func (r *Renamer) Rename(dir string) (Result, error) {
	var res Result
	log := logging.OrNop(r.Logger)

	if r.Tag == "" {
		return res, fmt.Errorf("rename: empty tag")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return res, fmt.Errorf("rename: %w", err)
	}
	if !info.IsDir() {
		return res, fmt.Errorf("rename %s: %w", dir, ErrNotDirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return res, fmt.Errorf("rename: read dir: %w", err)
	}

	prefix := r.Tag + "_"
	planned := make(map[string]bool, len(entries))

	for _, e := range entries {
		name := e.Name()
		if !isFile(dir, e) {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		if r.SkipPrefixed && strings.HasPrefix(name, prefix) {
			log.Debug("already prefixed", zap.String("file", name))
			res.Skipped = append(res.Skipped, name)
			continue
		}

		target := prefix + name
		if planned[target] || exists(filepath.Join(dir, target)) {
			log.Warn("target exists; file left unchanged", zap.String("file", name), zap.String("target", target))
			res.Conflicts = append(res.Conflicts, name)
			continue
		}
		planned[target] = true

		if r.DryRun {
			log.Info("would rename", zap.String("from", name), zap.String("to", target))
			res.Renamed = append(res.Renamed, target)
			continue
		}
		if err := os.Rename(filepath.Join(dir, name), filepath.Join(dir, target)); err != nil {
			return res, fmt.Errorf("rename %s: %w", name, err)
		}
		log.Debug("renamed", zap.String("from", name), zap.String("to", target))
		res.Renamed = append(res.Renamed, target)
	}

	log.Info("rename finished", zap.String("dir", dir),
		zap.Int("renamed", len(res.Renamed)), zap.Int("skipped", len(res.Skipped)),
		zap.Int("conflicts", len(res.Conflicts)), zap.Bool("dry_run", r.DryRun))
	return res, nil
}

// isFile follows symlinks, so a link to a regular file counts as a file.
func isFile(dir string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return e.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.Mode().IsRegular()
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
