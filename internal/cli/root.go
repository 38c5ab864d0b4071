// Package cli implements the ledgerctl command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dafibh/gofinance/gofinance-backend/internal/bootstrap"
	"github.com/dafibh/gofinance/gofinance-backend/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// LedgerOpener builds the ledger a command operates on
type LedgerOpener func(ctx context.Context, logger zerolog.Logger) (*bootstrap.Ledger, error)

// OpenFromEnv loads configuration from the environment and opens its backend
func OpenFromEnv(ctx context.Context, logger zerolog.Logger) (*bootstrap.Ledger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return bootstrap.NewLedger(ctx, cfg, logger)
}

// NewRootCommand builds the ledgerctl command tree over open
func NewRootCommand(open LedgerOpener) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Inspect and append to the gofinance ledger",
		Long: `ledgerctl reads and writes the same ledger the API serves.

Storage is selected with LEDGER_BACKEND (memory, file, sqlite, postgres, s3)
and the related settings, read from the environment or a .env file.

Example Usage:
  ledgerctl load
  ledgerctl add --name "Salário" --amount 500 --type up --category salary
  ledgerctl export --out ledger.xlsx`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log storage activity to stderr")

	withLedger := func(cmd *cobra.Command, fn func(*bootstrap.Ledger) error) error {
		logger := zerolog.Nop()
		if verbose {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		}
		ledger, err := open(cmd.Context(), logger)
		if err != nil {
			return err
		}
		defer ledger.Close()
		return fn(ledger)
	}

	rootCmd.AddCommand(
		newLoadCommand(withLedger),
		newAddCommand(withLedger),
		newCategoriesCommand(withLedger),
		newExportCommand(withLedger),
	)
	return rootCmd
}

type ledgerRunner func(cmd *cobra.Command, fn func(*bootstrap.Ledger) error) error

// Execute runs ledgerctl against the environment-configured ledger
func Execute() {
	if err := NewRootCommand(OpenFromEnv).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
