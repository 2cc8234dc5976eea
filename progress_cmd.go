package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/nthornton/blink/internal/progress"
)

var flagClearAll bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect and manage saved reading positions",
}

var progressListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reading positions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := progress.NewStore()
		if err != nil {
			return err
		}

		records := store.All()
		if len(records) == 0 {
			cmd.Println("No saved reading positions.")
			return nil
		}

		paths := make([]string, 0, len(records))
		for p := range records {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		for _, p := range paths {
			cmd.Printf("%s\tword %d\n", p, records[p].WordIndex)
		}
		return nil
	},
}

var progressClearCmd = &cobra.Command{
	Use:   "clear [file]",
	Short: "Clear the saved position for a file, or all positions with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagClearAll == (len(args) == 1) {
			return fmt.Errorf("provide either a file or --all")
		}

		store, err := progress.NewStore()
		if err != nil {
			return err
		}

		if flagClearAll {
			store.ClearAll()
		} else {
			path, err := progress.NormalizePath(args[0])
			if err != nil {
				return err
			}
			store.Clear(path)
		}
		return store.Flush()
	},
}

func init() {
	progressClearCmd.Flags().BoolVar(&flagClearAll, "all", false, "clear every saved position")
	progressCmd.AddCommand(progressListCmd, progressClearCmd)
	rootCmd.AddCommand(progressCmd)
}
