package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diillson/bikeshare-dashboard-go/internal/application/analysis"
	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/diillson/bikeshare-dashboard-go/internal/domain/repository"
	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
)

// rawPageSize é o número de viagens exibidas por página no modo --raw.
const rawPageSize = 5

// maxSkippedShown limita quantas linhas ignoradas são listadas no aviso.
const maxSkippedShown = 5

// BikeshareUseCase handles loading city data and running trip queries.
type BikeshareUseCase struct {
	source     repository.RecordSource
	cities     *entity.CityTable
	exportRepo repository.ExportRepository
	console    types.ConsoleInterface

	now   func() time.Time
	newID func() string
}

// NewBikeshareUseCase creates a new bikeshare use case.
func NewBikeshareUseCase(
	source repository.RecordSource,
	cities *entity.CityTable,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) *BikeshareUseCase {
	return &BikeshareUseCase{
		source:     source,
		cities:     cities,
		exportRepo: exportRepo,
		console:    console,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
}

// Cities returns the city table the use case resolves names against.
func (uc *BikeshareUseCase) Cities() *entity.CityTable {
	return uc.cities
}

// LoadAndDerive reads every record of the city and derives its temporal fields.
// Rows with malformed timestamps are skipped and reported, never fatal.
func (uc *BikeshareUseCase) LoadAndDerive(ctx context.Context, city entity.City) (*entity.Dataset, error) {
	if _, ok := uc.cities.Lookup(city.Name); !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownCity, city.Name)
	}

	start := time.Now()
	status := uc.console.Status(fmt.Sprintf("Loading %s trip data...", city.Title()))

	if d, ok := uc.source.(repository.SourceDescriber); ok {
		if where, err := d.Describe(ctx, city); err == nil {
			status.Update(fmt.Sprintf("Loading %s trip data from %s...", city.Title(), where))
		}
	}

	records, err := uc.source.Load(ctx, city)
	if err != nil {
		status.Stop()
		return nil, err
	}

	status.Update(fmt.Sprintf("Deriving fields for %d %s trips...", len(records), city.Title()))
	derived, skipped := analysis.DeriveAll(records)
	status.Stop()

	dataset := &entity.Dataset{City: city, Records: derived, Skipped: skipped}

	uc.console.LogInfo("Loaded %d trips for %s in %s", len(derived), city.Title(), elapsed(start))
	if len(skipped) > 0 {
		uc.reportSkipped(skipped)
	}

	return dataset, nil
}

// reportSkipped avisa sobre linhas descartadas por timestamp inválido.
func (uc *BikeshareUseCase) reportSkipped(skipped []entity.SkippedRecord) {
	uc.console.LogWarning("%d rows skipped: %s", len(skipped), types.ErrMalformedTimestamp)
	for i, s := range skipped {
		if i == maxSkippedShown {
			uc.console.LogWarning("  ... and %d more", len(skipped)-maxSkippedShown)
			break
		}
		uc.console.LogWarning("  %s", s.Err)
	}
}

// AvailableMonths returns the months present in the dataset, for the month prompt.
func (uc *BikeshareUseCase) AvailableMonths(dataset *entity.Dataset) []time.Month {
	return analysis.AvailableMonths(dataset.Records)
}

// RunQuery filters the dataset and computes the four reports, presenting each one as it is computed.
// Reports that cannot be computed are nil and their reason is recorded in NoData.
func (uc *BikeshareUseCase) RunQuery(dataset *entity.Dataset, spec entity.FilterSpec) *entity.QueryReport {
	report := &entity.QueryReport{
		ID:          uc.newID(),
		City:        spec.City().Name,
		Month:       strings.ToLower(spec.Month().String()),
		Day:         strings.ToLower(spec.Day().String()),
		GeneratedAt: uc.now(),
		Loaded:      len(dataset.Records),
		Skipped:     dataset.SkippedCount(),
	}

	view := analysis.Filter(dataset.Records, spec)
	report.Matched = len(view)

	uc.console.LogInfo("Filters: %s", spec)
	if report.Empty() {
		uc.console.LogWarning("No trips match the selected filters")
	} else {
		uc.console.LogInfo("%d of %d trips match", report.Matched, report.Loaded)
	}

	uc.stage(report, "The Most Frequent Times of Travel", report.TemporalSection, func() error {
		t, err := analysis.ComputeTemporalStats(view, spec.Month(), spec.Day())
		report.Temporal = t
		return err
	})
	uc.stage(report, "The Most Popular Stations and Trip", report.StationSection, func() error {
		s, err := analysis.ComputeStationStats(view)
		report.Stations = s
		return err
	})
	uc.stage(report, "Trip Duration", report.DurationSection, func() error {
		d, err := analysis.ComputeDurationStats(view)
		report.Durations = d
		return err
	})
	uc.stage(report, "User Stats", report.UserSection, func() error {
		u, err := analysis.ComputeUserStats(view, spec.City())
		report.Users = u
		return err
	})

	if report.Durations != nil && report.Durations.NegativeDurations > 0 {
		uc.console.LogWarning("%d trips counted although %s", report.Durations.NegativeDurations, types.ErrNegativeDuration)
	}

	return report
}

// stage executa um cálculo, exibe a seção correspondente e o tempo gasto.
func (uc *BikeshareUseCase) stage(report *entity.QueryReport, title string, section func() entity.ReportSection, compute func() error) {
	uc.console.Section(fmt.Sprintf("Calculating %s...", title))
	start := time.Now()

	if err := compute(); err != nil {
		if !errors.Is(err, types.ErrEmptyView) {
			uc.console.LogError("%s: %s", title, err)
		}
		report.NoData = append(report.NoData, err.Error())
	}

	uc.renderSection(section())
	uc.console.Println(fmt.Sprintf("This took %s.", elapsed(start)))
}

func (uc *BikeshareUseCase) renderSection(section entity.ReportSection) {
	table := uc.console.CreateTable()
	table.AddColumn("Metric")
	table.AddColumn("Value")
	for _, row := range section.Rows {
		table.AddRow(row.Label, row.Value)
	}
	uc.console.Print(table.Render())
}

// DisplayHourChart mostra a distribuição de viagens por hora de início.
func (uc *BikeshareUseCase) DisplayHourChart(report *entity.QueryReport) {
	if report.Temporal == nil {
		uc.console.LogWarning("Hour chart: %s", types.ErrEmptyView)
		return
	}
	counts := make([]types.HourCount, 0, len(report.Temporal.HourCounts))
	for hour, trips := range report.Temporal.HourCounts {
		counts = append(counts, types.HourCount{Hour: hour, Trips: trips})
	}
	uc.console.DisplayHourBars(counts)
}

// View returns the records of the dataset selected by spec.
func (uc *BikeshareUseCase) View(dataset *entity.Dataset, spec entity.FilterSpec) []entity.DerivedRecord {
	return analysis.Filter(dataset.Records, spec)
}

// RawPage returns the page-th block of an already filtered view, and whether more remain.
func (uc *BikeshareUseCase) RawPage(view []entity.DerivedRecord, page int) ([]entity.DerivedRecord, bool) {
	from := page * rawPageSize
	if from >= len(view) {
		return nil, false
	}
	to := from + rawPageSize
	if to > len(view) {
		to = len(view)
	}
	return view[from:to], to < len(view)
}

// DisplayRaw imprime um bloco de viagens brutas.
func (uc *BikeshareUseCase) DisplayRaw(records []entity.DerivedRecord) {
	table := uc.console.CreateTable()
	for _, col := range []string{"Row", "Start Time", "End Time", "Start Station", "End Station", "User Type", "Gender", "Birth Year"} {
		table.AddColumn(col)
	}
	for _, r := range records {
		birthYear := ""
		if r.BirthYear != nil {
			birthYear = fmt.Sprintf("%d", *r.BirthYear)
		}
		table.AddRow(r.Row, r.StartTime, r.EndTime, r.StartStation, r.EndStation, r.UserType, r.Gender, birthYear)
	}
	uc.console.Print(table.Render())
}

// ExportReport grava o relatório em cada formato pedido. Falhas de um formato não impedem os outros.
func (uc *BikeshareUseCase) ExportReport(report *entity.QueryReport, args *types.CLIArgs) {
	if args.ReportName == "" {
		return
	}

	for _, reportType := range args.ReportType {
		var (
			path string
			err  error
		)
		switch reportType {
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(report, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(report, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(report, args.ReportName, args.Dir)
		case "xlsx":
			path, err = uc.exportRepo.ExportToXLSX(report, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unsupported report type: %s", reportType)
			continue
		}

		format := strings.ToUpper(reportType)
		if err != nil {
			uc.console.LogError("Failed to export report to %s: %s", format, err)
		} else {
			uc.console.LogSuccess("Successfully exported report to %s: %s", format, path)
		}
	}
}

func elapsed(start time.Time) string {
	return fmt.Sprintf("%.4f seconds", time.Since(start).Seconds())
}
