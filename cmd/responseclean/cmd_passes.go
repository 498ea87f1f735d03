package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"responseclean/internal/cleaning"
	"responseclean/internal/coding"
	"responseclean/internal/config"
	"responseclean/internal/scenario"
)

var (
	codeVariant string
	fillValue   string
)

// labelCmd runs scenario labelling alone
var labelCmd = &cobra.Command{
	Use:   "label <input> <output>",
	Short: "Assign the scenario column from scenario_order",
	Args:  cobra.ExactArgs(2),
	RunE:  runLabel,
}

// codeCmd runs response coding alone
var codeCmd = &cobra.Command{
	Use:   "code <input> <output>",
	Short: "Code answers into the two indicator columns",
	Args:  cobra.ExactArgs(2),
	RunE:  runCode,
}

// checkCmd lists N_A responses
var checkCmd = &cobra.Command{
	Use:   "check <input>",
	Short: "Print the full answer of every row whose response is N_A",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

// fillCmd fills blank cells of one column
var fillCmd = &cobra.Command{
	Use:   "fill <file> <column>",
	Short: "Replace missing values in a column, rewriting the file",
	Args:  cobra.ExactArgs(2),
	RunE:  runFill,
}

// dropBlankCmd removes rows with a blank cell
var dropBlankCmd = &cobra.Command{
	Use:   "drop-blank <file> <column>",
	Short: "Remove rows whose column is missing, rewriting the file",
	Args:  cobra.ExactArgs(2),
	RunE:  runDropBlank,
}

func init() {
	codeCmd.Flags().StringVar(&codeVariant, "variant", "", "experiment variant: auto, exp1 or exp2 (overrides coding.variant)")
	fillCmd.Flags().StringVar(&fillValue, "value", "", "replacement value (default cleaning.fill_value)")
}

func runLabel(cmd *cobra.Command, args []string) error {
	s, err := store()
	if err != nil {
		return err
	}
	l := &scenario.Labeler{
		OrderColumn:    cfg.Columns.ScenarioOrder,
		ScenarioColumn: cfg.Columns.Scenario,
		BlockSize:      cfg.Labeling.BlockSize,
		Strict:         cfg.Labeling.Strict,
		Logger:         logger,
	}
	rep, err := l.LabelFile(s, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Labelled %d rows in %d blocks (%d unknown orders)\n",
		rep.Labeled, rep.Blocks, rep.Unknown)
	return nil
}

func runCode(cmd *cobra.Command, args []string) error {
	s, err := store()
	if err != nil {
		return err
	}
	v := cfg.Coding.Variant
	if codeVariant != "" {
		v = config.Variant(codeVariant)
		if err := v.Validate(); err != nil {
			return err
		}
	}
	v = v.Resolve(args[0], cfg.Coding.VariantMarker)

	c := &coding.Coder{Columns: cfg.Columns, Logger: logger}
	rep, err := c.CodeFile(s, args[0], args[1], v)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Coded %d of %d rows (%s)\n", rep.Coded, rep.Rows, v)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := store()
	if err != nil {
		return err
	}
	c := &cleaning.Cleaner{Store: s, Logger: logger}
	_, err = c.ReportMissingFile(args[0], cmd.OutOrStdout(), cfg.Columns.Response, cfg.Columns.Text)
	return err
}

func runFill(cmd *cobra.Command, args []string) error {
	s, err := store()
	if err != nil {
		return err
	}
	value := fillValue
	if value == "" {
		value = cfg.Cleaning.FillValue
	}
	c := &cleaning.Cleaner{Store: s, Logger: logger}
	n, err := c.FillFile(args[0], args[1], value)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Filled %d cells in %s\n", n, args[1])
	return nil
}

func runDropBlank(cmd *cobra.Command, args []string) error {
	s, err := store()
	if err != nil {
		return err
	}
	c := &cleaning.Cleaner{Store: s, Logger: logger}
	n, err := c.RemoveBlankFile(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d rows\n", n)
	return nil
}
