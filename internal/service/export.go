package service

import (
	"fmt"
	"io"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Sheet names used by ExportXLSX
const (
	ExportRowsSheet    = "Transações"
	ExportSummarySheet = "Resumo"
)

var exportHeader = []interface{}{"Nome", "Valor", "Tipo", "Categoria", "Data"}

// ExportXLSX writes the ledger rows and its summary as a two-sheet workbook
func ExportXLSX(ledger *domain.Ledger, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportRowsSheet); err != nil {
		return fmt.Errorf("failed to name rows sheet: %w", err)
	}
	if err := f.SetSheetRow(ExportRowsSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range ledger.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.Name, row.Amount, typeLabel(row.Type), row.CategoryName, row.Date}
		if err := f.SetSheetRow(ExportRowsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(ExportSummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Entradas", ledger.Summary.Income},
		{"Saídas", ledger.Summary.Outcome},
		{"Total", ledger.Summary.Total},
	}
	for i, values := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ExportSummarySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func typeLabel(t domain.TransactionType) string {
	switch t {
	case domain.TransactionTypeIncome:
		return "Entrada"
	case domain.TransactionTypeOutcome:
		return "Saída"
	default:
		return string(t)
	}
}
