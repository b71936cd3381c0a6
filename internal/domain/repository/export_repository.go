package repository

import (
	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(report *entity.QueryReport, filename string, outputDir string) (string, error)
	ExportToJSON(report *entity.QueryReport, filename string, outputDir string) (string, error)
	ExportToPDF(report *entity.QueryReport, filename string, outputDir string) (string, error)
	ExportToXLSX(report *entity.QueryReport, filename string, outputDir string) (string, error)
}
