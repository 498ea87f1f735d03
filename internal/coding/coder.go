package coding

import (
	"fmt"

	"go.uber.org/zap"

	"responseclean/internal/config"
	"responseclean/internal/logging"
	"responseclean/internal/table"
)

// Coder writes Code's result into the indicator columns of a table.
type Coder struct {
	Columns config.ColumnsConfig
	Logger  *zap.Logger
}

// Report counts what a coding pass did.
type Report struct {
	Rows        int
	Coded       int // rows where at least one rule fired
	NoSignal    int // rows with text that matched no rule
	MissingText int // rows skipped because the answer is missing
	Renamed     bool
}

// CodeTable codes every row in place. variant must already be resolved;
// for the alternate variant the indicator columns end up named direct and
// absent.
func (c *Coder) CodeTable(t *table.Table, variant config.Variant) (Report, error) {
	log := logging.OrNop(c.Logger)
	rep := Report{Rows: t.Len()}

	textIdx, err := t.Column(c.Columns.Text)
	if err != nil {
		return rep, err
	}
	genderIdx, err := t.Column(c.Columns.Gender)
	if err != nil {
		return rep, err
	}

	// An alternate-variant file that was coded before already carries
	// direct/absent; code into those instead of adding proximal/distal.
	proxName, distName := c.Columns.Proximal, c.Columns.Distal
	rename := variant.Alternate()
	if rename && t.Index(proxName) == -1 && t.Index(distName) == -1 &&
		t.Index(c.Columns.Direct) != -1 && t.Index(c.Columns.Absent) != -1 {
		proxName, distName = c.Columns.Direct, c.Columns.Absent
		rename = false
	}
	proxIdx := t.EnsureColumn(proxName)
	distIdx := t.EnsureColumn(distName)

	for i := 0; i < t.Len(); i++ {
		if t.Missing(i, textIdx) {
			rep.MissingText++
			log.Warn("missing response text; indicators left unset", zap.Int("row", i))
			continue
		}
		ind := Code(t.Get(i, textIdx), t.Get(i, genderIdx))
		if !ind.Matched() {
			rep.NoSignal++
			log.Debug("no keyword matched", zap.Int("row", i), zap.String("text", t.Get(i, textIdx)))
			continue
		}
		rep.Coded++
		if ind.Proximal != Unset {
			t.Set(i, proxIdx, ind.Proximal.String())
		}
		if ind.Distal != Unset {
			t.Set(i, distIdx, ind.Distal.String())
		}
	}

	if rename {
		if err := t.RenameColumn(c.Columns.Distal, c.Columns.Absent); err != nil {
			return rep, err
		}
		if err := t.RenameColumn(c.Columns.Proximal, c.Columns.Direct); err != nil {
			return rep, err
		}
		rep.Renamed = true
	}

	log.Debug("responses coded",
		zap.Int("rows", rep.Rows), zap.Int("coded", rep.Coded),
		zap.Int("no_signal", rep.NoSignal), zap.Int("missing_text", rep.MissingText),
		zap.String("variant", string(variant)))
	return rep, nil
}

// CodeFile codes the CSV at in and writes the result to out.
func (c *Coder) CodeFile(store table.Store, in, out string, variant config.Variant) (Report, error) {
	t, err := store.Load(in)
	if err != nil {
		return Report{}, err
	}
	rep, err := c.CodeTable(t, variant)
	if err != nil {
		return rep, fmt.Errorf("code %s: %w", in, err)
	}
	if err := store.Save(out, t); err != nil {
		return rep, err
	}
	return rep, nil
}
