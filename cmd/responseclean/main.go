package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"responseclean/internal/config"
	"responseclean/internal/logging"
	"responseclean/internal/table"
)

var (
	// Global flags
	cfgPath string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "responseclean",
	Short: "Clean and code survey responses for the responsibility study",
	Long: `responseclean prepares the child and adult response sheets for analysis.

The clean command runs the whole sequence on one CSV:
  1. drop rows without a full_response
  2. label the scenario of every trial from its block's scenario_order
  3. code each answer into the proximal/distal (or direct/absent) indicators
  4. fill indicators left unset with 0

The other commands run a single pass, or rename stimulus files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(cleanCmd, labelCmd, codeCmd, checkCmd, fillCmd, dropBlankCmd, renameCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// store returns the table store described by the loaded config.
func store() (table.Store, error) {
	comma, err := cfg.Comma()
	if err != nil {
		return table.Store{}, err
	}
	return table.Store{Comma: comma, MissingValues: cfg.Data.MissingValues}, nil
}
