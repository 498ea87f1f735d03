// Package scenario assigns scenario labels to blocks of trial rows.
//
// Rows come in fixed-size blocks, one block per participant. The first row
// of a block carries the counterbalancing order, which decides the scenario
// shown in the first and second half of the block.
package scenario

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"responseclean/internal/logging"
	"responseclean/internal/table"
)

// ErrMisaligned is returned in strict mode when rows do not form whole,
// consistent blocks.
var ErrMisaligned = errors.New("rows are not aligned to blocks")

// Pair is the scenario shown in the first (A) and second (B) half of a block.
type Pair struct {
	A, B string
}

// Orders maps each scenario_order value to its pair of scenarios.
var Orders = map[string]Pair{
	"fence_first":  {A: "fence", B: "mirror"},
	"fence_second": {A: "mirror", B: "fence"},
	"wall_first":   {A: "fan", B: "window"},
	"wall_second":  {A: "window", B: "fan"},
}

// Labeler fills the scenario column.
type Labeler struct {
	OrderColumn    string
	ScenarioColumn string
	BlockSize      int
	// Strict rejects a row count that is not a multiple of BlockSize and
	// blocks whose rows disagree on the order.
	Strict bool
	Logger *zap.Logger
}

// Report counts what a labelling pass did.
type Report struct {
	Blocks   int // blocks seen, a trailing partial block included
	Labeled  int // rows that received a scenario
	Unknown  int // blocks skipped for an unrecognised order
	Trailing int // rows in the trailing partial block
}

// Label assigns scenarios in place.
func (l *Labeler) Label(t *table.Table) (Report, error) {
	var rep Report
	log := logging.OrNop(l.Logger)

	if l.BlockSize < 2 || l.BlockSize%2 != 0 {
		return rep, fmt.Errorf("block size must be an even number >= 2, got %d", l.BlockSize)
	}
	orderIdx, err := t.Column(l.OrderColumn)
	if err != nil {
		return rep, err
	}

	n := t.Len()
	rep.Trailing = n % l.BlockSize
	if rep.Trailing != 0 {
		if l.Strict {
			return rep, fmt.Errorf("%w: %d rows is not a multiple of %d", ErrMisaligned, n, l.BlockSize)
		}
		log.Warn("row count is not a multiple of the block size; last block is partial",
			zap.Int("rows", n), zap.Int("block_size", l.BlockSize), zap.Int("trailing", rep.Trailing))
	}

	if l.Strict {
		if err := l.checkBlocks(t, orderIdx); err != nil {
			return rep, err
		}
	}

	scenarioIdx := t.EnsureColumn(l.ScenarioColumn)
	half := l.BlockSize / 2

	for start := 0; start < n; start += l.BlockSize {
		rep.Blocks++
		order := t.Get(start, orderIdx)
		pair, ok := Orders[order]
		if !ok {
			rep.Unknown++
			log.Warn("unrecognised scenario order; block left unlabelled",
				zap.Int("row", start), zap.String("scenario_order", order))
			continue
		}
		for i := start; i < start+l.BlockSize && i < n; i++ {
			label := pair.A
			if i-start >= half {
				label = pair.B
			}
			t.Set(i, scenarioIdx, label)
			rep.Labeled++
		}
	}

	log.Debug("scenarios labelled",
		zap.Int("blocks", rep.Blocks), zap.Int("rows", rep.Labeled), zap.Int("unknown", rep.Unknown))
	return rep, nil
}

// checkBlocks requires every row of a block to repeat the block's order.
func (l *Labeler) checkBlocks(t *table.Table, orderIdx int) error {
	for start := 0; start < t.Len(); start += l.BlockSize {
		want := t.Get(start, orderIdx)
		for i := start + 1; i < start+l.BlockSize && i < t.Len(); i++ {
			if got := t.Get(i, orderIdx); got != want {
				return fmt.Errorf("%w: row %d has scenario_order %q, block starting at row %d has %q",
					ErrMisaligned, i, got, start, want)
			}
		}
	}
	return nil
}

// LabelFile labels the CSV at in and writes the result to out.
func (l *Labeler) LabelFile(store table.Store, in, out string) (Report, error) {
	t, err := store.Load(in)
	if err != nil {
		return Report{}, err
	}
	rep, err := l.Label(t)
	if err != nil {
		return rep, fmt.Errorf("label %s: %w", in, err)
	}
	if err := store.Save(out, t); err != nil {
		return rep, err
	}
	return rep, nil
}
