package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"equipment-loans/loans"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

func main() {
	if err := newRootCmd(loadConfig()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(cfg config) *cobra.Command {
	root := &cobra.Command{
		Use:   "loans",
		Short: "Track equipment lent to students and staff",
		Long: `loans keeps an inventory of computers and tablets, who has borrowed
them and when. Run without a subcommand for the interactive menu.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if cfg.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cfg, func(mgr *loans.LoanManager) error {
				m := newMenu(cmd.InOrStdin(), cmd.OutOrStdout(), mgr)
				m.pause = isTerminal(cmd.InOrStdin())
				m.run()
				return nil
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.dbPath, "db", cfg.dbPath, "SQLite file keeping the catalog between runs (env LOANS_DB; empty = in-memory)")
	flags.StringVar(&cfg.contactDomain, "contact-domain", cfg.contactDomain, "domain for contacts of auto-registered borrowers (env LOANS_CONTACT_DOMAIN)")
	flags.BoolVar(&cfg.seed, "seed", cfg.seed, "load the demo inventory into a new catalog (env LOANS_SEED)")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", cfg.verbose, "enable verbose logging")

	root.AddCommand(
		newListCmd(&cfg),
		newBorrowersCmd(&cfg),
		newHistoryCmd(&cfg),
		newStatsCmd(&cfg),
		newLendCmd(&cfg),
		newReturnCmd(&cfg),
		newImportCmd(&cfg),
		newVersionCmd(),
	)
	return root
}

// withManager opens a LoanManager for the duration of fn.
func withManager(cfg config, fn func(*loans.LoanManager) error) error {
	mgr, err := loans.NewLoanManager(loans.Config{
		DBPath:        cfg.dbPath,
		ContactDomain: cfg.contactDomain,
		Seed:          cfg.seed,
		Logger:        slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer mgr.Close()
	return fn(mgr)
}

func isTerminal(in any) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
