package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/legacy-migrate/modules/migration/services/orchestrator"
)

const (
	sheetSummary  = "Summary"
	sheetErrors   = "Errors"
	sheetWarnings = "Warnings"
)

// WriteWorkbook saves the run as an xlsx file: one Summary row per importer
// and one row per error and warning.
func WriteWorkbook(path string, s *orchestrator.Summary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}
	for _, name := range []string{sheetErrors, sheetWarnings} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := [][]any{{"Importer", "Status", "Imported", "Skipped", "Errors", "Warnings", "Duration (s)"}}
	for _, r := range s.Results {
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		rows = append(rows, []any{r.Name, status, r.Imported, r.Skipped, len(r.Errors), len(r.Warnings), round2(r.Duration.Seconds())})
	}
	t := s.Totals()
	rows = append(rows, []any{"Total", "", t.Imported, t.Skipped, t.Errors, t.Warnings, round2(s.Duration.Seconds())})
	if err := writeRows(f, sheetSummary, rows, bold); err != nil {
		return err
	}

	errRows := [][]any{{"Importer", "Error"}}
	warnRows := [][]any{{"Importer", "Warning"}}
	for _, r := range s.Results {
		for _, msg := range r.Errors {
			errRows = append(errRows, []any{r.Name, msg})
		}
		for _, msg := range r.Warnings {
			warnRows = append(warnRows, []any{r.Name, msg})
		}
	}
	if err := writeRows(f, sheetErrors, errRows, bold); err != nil {
		return err
	}
	if err := writeRows(f, sheetWarnings, warnRows, bold); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetErrors, "B", "B", 120); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetWarnings, "B", "B", 120); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]any, header int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, header)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
