package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/diillson/bikeshare-dashboard-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Funções de Exportação do Relatório de Viagens ---

func (r *ExportRepositoryImpl) ExportToCSV(report *entity.QueryReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{"Section", "Metric", "Value"}); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, section := range report.Sections() {
		for _, row := range section.Rows {
			record := []string{section.Title, row.Label, row.Value}
			if err := writer.Write(record); err != nil {
				return "", fmt.Errorf("error writing CSV row: %w", err)
			}
		}
	}

	// Distribuição por hora, útil para gráficos externos
	if report.Temporal != nil {
		for hour, trips := range report.Temporal.HourCounts {
			record := []string{"Trips by Hour", entity.FormatHour(hour), fmt.Sprintf("%d", trips)}
			if err := writer.Write(record); err != nil {
				return "", fmt.Errorf("error writing CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(report *entity.QueryReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(report *entity.QueryReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(section entity.ReportSection) {
		if len(section.Rows) == 0 {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(section.Title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for _, row := range section.Rows {
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(70, 6, tr(row.Label), "", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(120, 6, tr(row.Value), "", "L", false)
		}
		pdf.Ln(6)
	}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	title := fmt.Sprintf("  Bikeshare Report: %s", entity.City{Name: report.City}.Title())
	pdf.CellFormat(0, 12, tr(title), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	subtitle := fmt.Sprintf("  Month: %s   Day: %s   Trips: %d", report.Month, report.Day, report.Matched)
	pdf.CellFormat(0, 8, tr(subtitle), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	for _, section := range report.Sections() {
		drawSection(section)
	}

	if report.Temporal != nil {
		drawHourChart(pdf, report.Temporal.HourCounts)
	}

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	footer := fmt.Sprintf("Generated at %s", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	pdf.CellFormat(0, 10, footer, "", 0, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// drawHourChart desenha a distribuição de viagens por hora como barras horizontais.
func drawHourChart(pdf *gofpdf.Fpdf, counts [24]int) {
	maxTrips := 0
	for _, c := range counts {
		if c > maxTrips {
			maxTrips = c
		}
	}
	if maxTrips == 0 {
		return
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(0, 8, "Trips by Start Hour")
	pdf.Ln(10)

	const barMaxWidth = 150.0
	pdf.SetFont("Arial", "", 9)
	pdf.SetFillColor(70, 130, 180)
	for hour, trips := range counts {
		pdf.SetTextColor(50, 50, 50)
		pdf.CellFormat(15, 7, entity.FormatHour(hour), "", 0, "L", false, 0, "")
		width := barMaxWidth * float64(trips) / float64(maxTrips)
		if width > 0 {
			pdf.Rect(pdf.GetX(), pdf.GetY()+1, width, 5, "F")
		}
		pdf.SetX(pdf.GetX() + barMaxWidth + 2)
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", trips), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
