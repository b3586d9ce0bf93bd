// Package xlsx exports records to an Excel workbook.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"expensetracker/internal/core"
	"expensetracker/internal/export"
)

// SheetName is the worksheet the records are written to.
const SheetName = "Expenses"

// numFmtTwoDecimals is the built-in "0.00" number format.
const numFmtTwoDecimals = 2

var _ export.Exporter = (*Exporter)(nil)

type Exporter struct{}

func New() *Exporter {
	return &Exporter{}
}

// Export writes a new workbook at path, replacing any existing file. Amounts
// are numeric cells so the sheet can sum them.
func (e *Exporter) Export(ctx context.Context, path string, records []core.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(export.Header))
	for i, h := range export.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Date.String(), r.Name, nil, string(r.Category)}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
		// Numeric text keeps the exact decimal instead of a float64 approximation.
		amountCell, err := excelize.CoordinatesToCellName(3, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellDefault(SheetName, amountCell, r.Amount.String()); err != nil {
			return fmt.Errorf("write amount %d: %w", i+2, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
	if err != nil {
		return fmt.Errorf("amount style: %w", err)
	}
	if err := f.SetColStyle(SheetName, "C", style); err != nil {
		return fmt.Errorf("amount style: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
