package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"equipment-loans/loans"
)

func newListCmd(cfg *config) *cobra.Command {
	var availableOnly, asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the items in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(*cfg, func(mgr *loans.LoanManager) error {
				items, title, empty := mgr.Items(), "INVENTORY", "No items registered."
				if availableOnly {
					items, title, empty = mgr.AvailableItems(), "AVAILABLE ITEMS", "No items available right now."
				}
				if asJSON {
					views := make([]itemView, 0, len(items))
					for _, it := range items {
						views = append(views, newItemView(it))
					}
					return writeJSON(cmd.OutOrStdout(), views)
				}
				printItems(cmd.OutOrStdout(), title, items, empty)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&availableOnly, "available", false, "only items that can be borrowed now")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func newBorrowersCmd(cfg *config) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "borrowers",
		Short: "List registered borrowers and what they hold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(*cfg, func(mgr *loans.LoanManager) error {
				if !asJSON {
					printBorrowers(cmd.OutOrStdout(), mgr.Borrowers())
					return nil
				}
				views := make([]borrowerView, 0)
				for _, b := range mgr.Borrowers() {
					held := b.HeldItems()
					if held == nil {
						held = []string{}
					}
					views = append(views, borrowerView{Name: b.Name(), Contact: b.Contact(), Role: string(b.Role()), Holds: held})
				}
				return writeJSON(cmd.OutOrStdout(), views)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func newHistoryCmd(cfg *config) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "history [ITEM]",
		Short: "Show the loan history of one item, or of every item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(*cfg, func(mgr *loans.LoanManager) error {
				out := cmd.OutOrStdout()
				if len(args) == 0 {
					all := mgr.FullHistory()
					if !asJSON {
						printFullHistory(out, all)
						return nil
					}
					views := make([]loanView, 0)
					for _, h := range all {
						views = appendLoanViews(views, h.Item.Name(), h.Loans)
					}
					return writeJSON(out, views)
				}

				history, err := mgr.HistoryForItem(args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(out, appendLoanViews(make([]loanView, 0), args[0], history))
				}
				printLoans(out, "", history)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func newStatsCmd(cfg *config) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(*cfg, func(mgr *loans.LoanManager) error {
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), mgr.Statistics())
				}
				printStats(cmd.OutOrStdout(), mgr.Statistics())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func newLendCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "lend ITEM BORROWER",
		Short: "Lend an item; unknown borrowers are registered automatically",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(*cfg, func(mgr *loans.LoanManager) error {
				msg, err := mgr.RegisterLoan(args[0], args[1])
				if msg != "" {
					fmt.Fprintln(cmd.OutOrStdout(), msg)
				}
				return err
			})
		},
	}
}

func newReturnCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "return ITEM",
		Short: "Return a lent item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(*cfg, func(mgr *loans.LoanManager) error {
				msg, holder, err := mgr.ReturnItem(args[0])
				if msg != "" {
					if holder != "" {
						msg = fmt.Sprintf("%s (was held by %s)", msg, holder)
					}
					fmt.Fprintln(cmd.OutOrStdout(), msg)
				}
				return err
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of loans",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "loans version %s\n", Version)
		},
	}
}
