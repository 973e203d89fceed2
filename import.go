package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"equipment-loans/loans"
)

func newImportCmd(cfg *config) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "import PATTERN...",
		Short: "Import items and borrowers from YAML inventory files",
		Long: `Import reads YAML inventory files (glob patterns, ** allowed) and adds their
items and borrowers to the catalog. Existing names are never overwritten.
Use --db to keep the result.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// A reset import starts from nothing, demo data included.
			run := *cfg
			if reset {
				run.seed = false
			}
			return withManager(run, func(mgr *loans.LoanManager) error {
				out := cmd.OutOrStdout()
				rep, err := mgr.Import(args, reset)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "Import complete!\n")
				fmt.Fprintf(out, "Items imported: %d\n", rep.ItemsAdded)
				fmt.Fprintf(out, "Borrowers imported: %d\n", rep.BorrowersAdded)
				fmt.Fprintf(out, "Skipped: %d\n", len(rep.Skipped))
				for _, reason := range rep.Skipped {
					fmt.Fprintf(out, "  - %s\n", reason)
				}

				items := mgr.Items()
				if len(items) == 0 {
					return nil
				}
				fmt.Fprintf(out, "\nCatalog:\n")
				fmt.Fprintf(out, "%-30s %-10s %-30s\n", "Name", "Category", "Details")
				fmt.Fprintln(out, strings.Repeat("-", 72))
				for _, it := range items {
					fmt.Fprintf(out, "%-30s %-10s %-30s\n", truncateString(it.Name(), 30), it.Category(), truncateString(it.Details(), 30))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "discard the current catalog before importing")
	return cmd
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
