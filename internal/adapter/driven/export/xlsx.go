package export

import (
	"fmt"
	"path/filepath"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const (
	reportSheet = "Report"
	hoursSheet  = "Trips by Hour"
)

// ExportToXLSX grava o relatório numa planilha, com uma aba extra para a distribuição por hora.
func (r *ExportRepositoryImpl) ExportToXLSX(report *entity.QueryReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), reportSheet); err != nil {
		return "", fmt.Errorf("error naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("error creating header style: %w", err)
	}

	rows := [][]any{{"Section", "Metric", "Value"}}
	for _, section := range report.Sections() {
		for _, row := range section.Rows {
			rows = append(rows, []any{section.Title, row.Label, row.Value})
		}
	}
	if err := writeRows(f, reportSheet, rows); err != nil {
		return "", err
	}
	if err := f.SetCellStyle(reportSheet, "A1", "C1", headerStyle); err != nil {
		return "", fmt.Errorf("error styling header: %w", err)
	}
	if err := f.SetColWidth(reportSheet, "A", "B", 32); err != nil {
		return "", fmt.Errorf("error sizing columns: %w", err)
	}
	if err := f.SetColWidth(reportSheet, "C", "C", 48); err != nil {
		return "", fmt.Errorf("error sizing columns: %w", err)
	}

	if report.Temporal != nil {
		if _, err := f.NewSheet(hoursSheet); err != nil {
			return "", fmt.Errorf("error creating sheet: %w", err)
		}
		hours := [][]any{{"Hour", "Trips"}}
		for hour, trips := range report.Temporal.HourCounts {
			hours = append(hours, []any{entity.FormatHour(hour), trips})
		}
		if err := writeRows(f, hoursSheet, hours); err != nil {
			return "", err
		}
		if err := f.SetCellStyle(hoursSheet, "A1", "B1", headerStyle); err != nil {
			return "", fmt.Errorf("error styling header: %w", err)
		}
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("error resolving cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("error writing cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
