package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"starsieve/pkg/axy"
)

var flagInspectAll bool

// inspectCmd prints the contents of an .axy reference table.
var inspectCmd = &cobra.Command{
	Use:   "inspect <axy-file>",
	Short: "Print the contents of an .axy reference table",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&flagInspectAll, "all", false, "print every row instead of the first ten")
}

func runInspect(cmd *cobra.Command, args []string) error {
	table, err := axy.ReadTable(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d reference stars\n", args[0], len(table.Rows))

	limit := len(table.Rows)
	if !flagInspectAll && limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		fmt.Printf("  %4d  %s\n", i+1, table.Rows[i])
	}
	if limit < len(table.Rows) {
		fmt.Printf("  ... %d more (use --all)\n", len(table.Rows)-limit)
	}
	return nil
}
