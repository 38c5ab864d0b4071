package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dafibh/gofinance/gofinance-backend/internal/bootstrap"
	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/dafibh/gofinance/gofinance-backend/internal/service"
	"github.com/spf13/cobra"
)

func newLoadCommand(run ledgerRunner) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Print every transaction and the income, outcome and total",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(l *bootstrap.Ledger) error {
				ledger, err := l.Service.Load(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeLedgerJSON(cmd, ledger)
				}
				return writeLedgerTable(cmd, ledger)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the ledger as JSON")
	return cmd
}

func writeLedgerJSON(cmd *cobra.Command, ledger *domain.Ledger) error {
	rows := ledger.Rows
	if rows == nil {
		rows = []domain.DisplayRow{}
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{
		"rows":    rows,
		"summary": ledger.Summary,
		"issues":  len(ledger.Issues),
	})
}

func writeLedgerTable(cmd *cobra.Command, ledger *domain.Ledger) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATA\tNOME\tVALOR\tCATEGORIA")
	for _, row := range ledger.Rows {
		name := row.Name
		if row.Malformed {
			name += " (!)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Date, name, row.Amount, row.CategoryName)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Entradas\t%s\n", ledger.Summary.Income)
	fmt.Fprintf(w, "Saídas\t%s\n", ledger.Summary.Outcome)
	fmt.Fprintf(w, "Total\t%s\n", ledger.Summary.Total)
	if n := len(ledger.Issues); n > 0 {
		fmt.Fprintf(w, "\n%d registro(s) ignorado(s) nos totais\n", n)
	}
	return w.Flush()
}

func newAddCommand(run ledgerRunner) *cobra.Command {
	var name, amount, txType, categoryKey string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate := domain.Candidate{
				Name:     name,
				Amount:   amount,
				Type:     domain.TransactionType(txType),
				Category: domain.NoCategory(),
			}
			if categoryKey != "" {
				candidate.Category = domain.SelectCategory(domain.CategoryKey(categoryKey))
			}

			return run(cmd, func(l *bootstrap.Ledger) error {
				record, err := l.Service.Append(cmd.Context(), candidate)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", record.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Transaction name")
	cmd.Flags().StringVar(&amount, "amount", "", "Positive amount, dot as decimal separator")
	cmd.Flags().StringVar(&txType, "type", "", `Transaction type: "up" (income) or "down" (outcome)`)
	cmd.Flags().StringVar(&categoryKey, "category", "", "Category key (see the categories command)")
	return cmd
}

func newCategoriesCommand(run ledgerRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the available categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(l *bootstrap.Ledger) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "KEY\tNOME\tICONE")
				for _, c := range l.Categories.All() {
					fmt.Fprintf(w, "%s\t%s\t%s\n", c.Key, c.Name, c.Icon)
				}
				return w.Flush()
			})
		},
	}
}

func newExportCommand(run ledgerRunner) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			return run(cmd, func(l *bootstrap.Ledger) error {
				ledger, err := l.Service.Load(cmd.Context())
				if err != nil {
					return err
				}

				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				if err := service.ExportXLSX(ledger, f); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("close %s: %w", out, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transaction(s) to %s\n", len(ledger.Rows), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Destination .xlsx file")
	return cmd
}
