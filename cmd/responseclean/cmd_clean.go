package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"responseclean/internal/config"
	"responseclean/internal/pipeline"
)

var (
	cleanVariant string
	cleanReport  bool
)

// cleanCmd runs the full cleaning sequence
var cleanCmd = &cobra.Command{
	Use:   "clean [input] [output]",
	Short: "Run the full cleaning sequence on one dataset",
	Long: `Removes blank answers, labels scenarios, codes answers and fills the
indicator columns. Paths default to data.input and data.output from the config.

The variant decides the indicator column names. With --variant auto (the
default) a path containing coding.variant_marker ("exp2") is treated as the
second experiment and gets direct/absent columns.

Example:
  responseclean clean data/exp1_child.csv data/exp1_child_clean.csv
  responseclean clean --variant exp2 --report`,
	Args: cobra.MaximumNArgs(2),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVar(&cleanVariant, "variant", "", "experiment variant: auto, exp1 or exp2 (overrides coding.variant)")
	cleanCmd.Flags().BoolVar(&cleanReport, "report", false, "list N_A responses after cleaning")
}

func runClean(cmd *cobra.Command, args []string) error {
	input, output := cfg.Data.Input, cfg.Data.Output
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		output = args[1]
	}
	if input == "" || output == "" {
		return fmt.Errorf("input and output paths are required")
	}
	if cleanVariant != "" {
		v := config.Variant(cleanVariant)
		if err := v.Validate(); err != nil {
			return err
		}
		cfg.Coding.Variant = v
	}
	if cleanReport {
		cfg.Cleaning.ReportMissing = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(cfg, logger)
	p.Report = cmd.OutOrStdout()
	sum, err := p.Run(ctx, input, output)
	if err != nil {
		return fmt.Errorf("cleaning failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Cleaning succeeded: %s (%s, %d rows removed, %d coded)\n",
		output, sum.Variant, sum.Removed, sum.Coding.Coded)
	return nil
}
