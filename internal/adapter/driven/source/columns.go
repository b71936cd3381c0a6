package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
)

// Columns maps the logical trip fields to the column names used by a source.
type Columns struct {
	StartTime    string
	EndTime      string
	StartStation string
	EndStation   string
	UserType     string
	Gender       string
	BirthYear    string
}

// DefaultColumns returns the headers of the bikeshare CSV exports.
func DefaultColumns() Columns {
	return Columns{
		StartTime:    "Start Time",
		EndTime:      "End Time",
		StartStation: "Start Station",
		EndStation:   "End Station",
		UserType:     "User Type",
		Gender:       "Gender",
		BirthYear:    "Birth Year",
	}
}

// ColumnsFrom overlays a configured mapping on the defaults.
func ColumnsFrom(m types.ColumnMapping) Columns {
	c := DefaultColumns()
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.StartTime, m.StartTime)
	set(&c.EndTime, m.EndTime)
	set(&c.StartStation, m.StartStation)
	set(&c.EndStation, m.EndStation)
	set(&c.UserType, m.UserType)
	set(&c.Gender, m.Gender)
	set(&c.BirthYear, m.BirthYear)
	return c
}

func (c Columns) names() []string {
	return []string{c.StartTime, c.EndTime, c.StartStation, c.EndStation, c.UserType, c.Gender, c.BirthYear}
}

func (c Columns) required() []string {
	return []string{c.StartTime, c.EndTime, c.StartStation, c.EndStation}
}

// rowMapper converts positional rows into trip records using a header.
type rowMapper struct {
	index map[string]int
	cols  Columns
}

func newRowMapper(header []string, cols Columns) (*rowMapper, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		// Limpa BOM e aspas que alguns exports deixam no cabeçalho
		clean := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		clean = strings.ReplaceAll(clean, `"`, "")
		index[clean] = i
	}
	for _, name := range cols.required() {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return &rowMapper{index: index, cols: cols}, nil
}

func (m *rowMapper) value(row []string, column string) string {
	i, ok := m.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (m *rowMapper) record(row []string, rowNum int) entity.TripRecord {
	return entity.TripRecord{
		Row:          rowNum,
		StartTime:    m.value(row, m.cols.StartTime),
		EndTime:      m.value(row, m.cols.EndTime),
		StartStation: m.value(row, m.cols.StartStation),
		EndStation:   m.value(row, m.cols.EndStation),
		UserType:     m.value(row, m.cols.UserType),
		Gender:       m.value(row, m.cols.Gender),
		BirthYear:    parseBirthYear(m.value(row, m.cols.BirthYear)),
	}
}

// parseBirthYear accepts "1992" and the float form "1992.0" pandas writes. Anything else, NaN and
// values outside 1..9999 included, is missing.
func parseBirthYear(raw string) *int {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 1 || f > 9999 {
		return nil
	}
	year := int(f)
	return &year
}

// readCSV reads every trip from a CSV stream. Row numbers start at 1 for the first data row.
func readCSV(ctx context.Context, r io.Reader, cols Columns) ([]entity.TripRecord, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty CSV: header row missing")
		}
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	mapper, err := newRowMapper(header, cols)
	if err != nil {
		return nil, err
	}

	var records []entity.TripRecord
	for rowNum := 1; ; rowNum++ {
		if rowNum%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row %d: %w", rowNum, err)
		}
		records = append(records, mapper.record(row, rowNum))
	}
}
