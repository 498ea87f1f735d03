package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"responseclean/internal/rename"
)

var (
	renameTag          string
	renameDryRun       bool
	renameSkipPrefixed bool
)

// renameCmd prefixes stimulus files with the experiment tag
var renameCmd = &cobra.Command{
	Use:   "rename [dir]",
	Short: "Prefix every file in a directory with the experiment tag",
	Long: `Renames each regular file in dir to <tag>_<name>. Subdirectories are
skipped and not descended into. A file whose new name is already taken is
left alone and reported.

Example:
  responseclean rename videos/warmup_materials --tag exp2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRename,
}

func init() {
	renameCmd.Flags().StringVar(&renameTag, "tag", "", "prefix tag (default rename.tag)")
	renameCmd.Flags().BoolVar(&renameDryRun, "dry-run", false, "log the renames without touching files")
	renameCmd.Flags().BoolVar(&renameSkipPrefixed, "skip-prefixed", false, "leave files that already carry the prefix alone")
}

func runRename(cmd *cobra.Command, args []string) error {
	dir := cfg.Rename.Dir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no directory given (argument or rename.dir)")
	}
	tag := renameTag
	if tag == "" {
		tag = cfg.Rename.Tag
	}

	r := &rename.Renamer{Tag: tag, SkipPrefixed: renameSkipPrefixed, DryRun: renameDryRun, Logger: logger}
	res, err := r.Rename(dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed %d files (%d skipped, %d conflicts)\n",
		len(res.Renamed), len(res.Skipped), len(res.Conflicts))
	for _, name := range res.Conflicts {
		fmt.Fprintf(cmd.OutOrStdout(), "  conflict: %s\n", name)
	}
	return nil
}
