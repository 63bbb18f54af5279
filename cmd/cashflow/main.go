package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/cashflow-tui/cashflow/pkg/app"
	"github.com/cashflow-tui/cashflow/pkg/config"
	"github.com/cashflow-tui/cashflow/pkg/ledger"
	"github.com/cashflow-tui/cashflow/pkg/storage"
)

var (
	dataDir    string
	importPath string
	importOnly bool
)

var rootCmd = &cobra.Command{
	Use:   "cashflow",
	Short: "Terminal expense tracker",
	Long: `cashflow records and reviews personal expenses offline.

Data lives as plain CSV under the data directory (default ~/.cashflow).
A bare invocation launches the interactive shell; --import appends a CSV
before launching, and --import-only performs the import and exits.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := setup()
		if err != nil {
			return err
		}

		if importPath != "" {
			count, warnings, err := env.ledger.Import(importPath)
			if err != nil {
				return err
			}
			env.logger.Info("import finished", "path", importPath, "imported", count, "skipped", len(warnings))
			fmt.Fprintf(os.Stderr, "Imported %d expenses from %s\n", count, importPath)
		}
		if importOnly {
			if importPath == "" {
				return fmt.Errorf("--import-only requires --import <file>")
			}
			return nil
		}

		shell := app.New(env.ledger, env.cfg, env.logger)
		return shell.Run(os.Stdin, os.Stdout)
	},
}

// env bundles the wiring every command needs.
type env struct {
	logger *log.Logger
	cfg    *config.Config
	store  *storage.Store
	ledger *ledger.Ledger
}

func setup() (*env, error) {
	_ = gotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cashflow",
	})

	dir := dataDir
	if dir == "" {
		if v := os.Getenv("CASHFLOW_DATA_DIR"); v != "" {
			dir = v
		} else {
			def, err := config.DefaultDataDir()
			if err != nil {
				return nil, err
			}
			dir = def
		}
	}

	store, err := storage.New(dir, logger)
	if err != nil {
		// The one fatal startup error: no data directory, no ledger.
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	l, warnings := ledger.Open(store, logger)
	if len(warnings) > 0 {
		logger.Warn("some rows were skipped during load", "count", len(warnings))
	}
	return &env{logger: logger, cfg: cfg, store: store, ledger: l}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.cashflow)")
	rootCmd.Flags().StringVarP(&importPath, "import", "i", "", "Import a CSV or XLS file before launching")
	rootCmd.Flags().BoolVar(&importOnly, "import-only", false, "Import and exit without the interactive shell")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(currencyCmd)
	rootCmd.AddCommand(dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
