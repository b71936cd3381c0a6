package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
)

// CSVSource reads trips from CSV files on the local filesystem.
type CSVSource struct {
	dataDir string
	columns map[string]Columns
}

// NewCSVSource creates a CSV record source. Relative city paths are resolved against dataDir.
func NewCSVSource(dataDir string, columns map[string]Columns) *CSVSource {
	return &CSVSource{dataDir: dataDir, columns: columns}
}

func (s *CSVSource) path(city entity.City) string {
	if filepath.IsAbs(city.Source.Path) {
		return city.Source.Path
	}
	return filepath.Join(s.dataDir, city.Source.Path)
}

// Load lê o CSV da cidade.
func (s *CSVSource) Load(ctx context.Context, city entity.City) ([]entity.TripRecord, error) {
	path := s.path(city)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSourceUnavailable, city.Name, err)
	}
	defer file.Close()

	records, err := readCSV(ctx, file, columnsFor(s.columns, city))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s: %v", types.ErrSourceUnavailable, city.Name, path, err)
	}
	return records, nil
}

// Describe retorna o arquivo de onde a cidade é lida.
func (s *CSVSource) Describe(_ context.Context, city entity.City) (string, error) {
	return s.path(city), nil
}

func columnsFor(columns map[string]Columns, city entity.City) Columns {
	if c, ok := columns[city.Name]; ok {
		return c
	}
	return DefaultColumns()
}
