// Package pipeline runs the full cleaning sequence over one dataset.
//
// The passes communicate only through files: each one loads what the
// previous pass wrote, so output must be writable and is overwritten.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"responseclean/internal/cleaning"
	"responseclean/internal/coding"
	"responseclean/internal/config"
	"responseclean/internal/logging"
	"responseclean/internal/scenario"
	"responseclean/internal/table"
)

// Pipeline removes blank answers, labels scenarios, codes answers and fills
// the indicator columns.
type Pipeline struct {
	Config *config.Config
	Logger *zap.Logger
	// Report receives the N_A listing when Config.Cleaning.ReportMissing is
	// set. Nil discards it.
	Report io.Writer
}

// Summary collects the per-pass results of a run.
type Summary struct {
	Variant  config.Variant
	Removed  int
	Labeling scenario.Report
	Coding   coding.Report
	Filled   map[string]int
	Reported int
}

// New returns a pipeline for cfg.
func New(cfg *config.Config, logger *zap.Logger) *Pipeline {
	return &Pipeline{Config: cfg, Logger: logger}
}

// Run cleans input into output. The input file is only read.
func (p *Pipeline) Run(ctx context.Context, input, output string) (Summary, error) {
	cfg := p.Config
	log := logging.OrNop(p.Logger)
	sum := Summary{Filled: map[string]int{}}

	comma, err := cfg.Comma()
	if err != nil {
		return sum, err
	}
	store := table.Store{Comma: comma, MissingValues: cfg.Data.MissingValues}
	sum.Variant = cfg.Coding.Variant.Resolve(input, cfg.Coding.VariantMarker)
	log.Info("cleaning dataset",
		zap.String("input", input), zap.String("output", output), zap.String("variant", string(sum.Variant)))

	cleaner := &cleaning.Cleaner{Store: store, Logger: log}
	labeler := &scenario.Labeler{
		OrderColumn:    cfg.Columns.ScenarioOrder,
		ScenarioColumn: cfg.Columns.Scenario,
		BlockSize:      cfg.Labeling.BlockSize,
		Strict:         cfg.Labeling.Strict,
		Logger:         log,
	}
	coder := &coding.Coder{Columns: cfg.Columns, Logger: log}

	steps := []struct {
		name string
		run  func() error
	}{
		{"remove blank rows", func() error {
			sum.Removed, err = cleaner.RemoveBlankTo(input, output, cfg.Columns.Text)
			return err
		}},
		{"label scenarios", func() error {
			sum.Labeling, err = labeler.LabelFile(store, output, output)
			return err
		}},
		{"code responses", func() error {
			sum.Coding, err = coder.CodeFile(store, output, output, sum.Variant)
			return err
		}},
		{"fill indicators", func() error {
			prox, dist := cfg.Columns.IndicatorColumns(sum.Variant)
			for _, col := range []string{prox, dist} {
				n, err := cleaner.FillFile(output, col, cfg.Cleaning.FillValue)
				if err != nil {
					return err
				}
				sum.Filled[col] = n
			}
			return nil
		}},
		{"report missing responses", func() error {
			if !cfg.Cleaning.ReportMissing {
				return nil
			}
			w := p.Report
			if w == nil {
				w = io.Discard
			}
			sum.Reported, err = cleaner.ReportMissingFile(output, w, cfg.Columns.Response, cfg.Columns.Text)
			return err
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return sum, fmt.Errorf("%s: %w", step.name, err)
		}
		if err := step.run(); err != nil {
			return sum, fmt.Errorf("%s: %w", step.name, err)
		}
		log.Debug("step done", zap.String("step", step.name))
	}

	log.Info("dataset cleaned",
		zap.String("output", output), zap.Int("removed", sum.Removed),
		zap.Int("blocks", sum.Labeling.Blocks), zap.Int("coded", sum.Coding.Coded))
	return sum, nil
}
