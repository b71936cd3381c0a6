package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"

	_ "modernc.org/sqlite"
)

// DefaultTable is the table read when a SQLite city does not name one.
const DefaultTable = "trips"

// SQLiteSource reads trips from a table of a SQLite database file.
type SQLiteSource struct {
	dataDir string
	columns map[string]Columns
}

// NewSQLiteSource creates a SQLite record source. Relative database paths are resolved against dataDir.
func NewSQLiteSource(dataDir string, columns map[string]Columns) *SQLiteSource {
	return &SQLiteSource{dataDir: dataDir, columns: columns}
}

func (s *SQLiteSource) location(city entity.City) (path, table string) {
	path = city.Source.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dataDir, path)
	}
	table = city.Source.Table
	if table == "" {
		table = DefaultTable
	}
	return path, table
}

// Load reads every row of the city's table in rowid order.
func (s *SQLiteSource) Load(ctx context.Context, city entity.City) ([]entity.TripRecord, error) {
	path, table := s.location(city)

	// sql.Open criaria um banco vazio; um arquivo ausente é fonte indisponível.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSourceUnavailable, city.Name, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSourceUnavailable, city.Name, err)
	}
	defer db.Close()

	records, err := queryTrips(ctx, db, table, columnsFor(s.columns, city))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s#%s: %v", types.ErrSourceUnavailable, city.Name, path, table, err)
	}
	return records, nil
}

// Describe returns the database file and table of the city.
func (s *SQLiteSource) Describe(_ context.Context, city entity.City) (string, error) {
	path, table := s.location(city)
	return fmt.Sprintf("%s#%s", path, table), nil
}

func queryTrips(ctx context.Context, db *sql.DB, table string, cols Columns) ([]entity.TripRecord, error) {
	present, err := tableColumns(ctx, db, table)
	if err != nil {
		return nil, err
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("table %q not found", table)
	}

	// Colunas opcionais ausentes viram NULL, como células vazias no CSV.
	selects := make([]string, 0, len(cols.names()))
	for _, name := range cols.names() {
		if present[name] {
			selects = append(selects, quoteIdent(name))
		} else {
			selects = append(selects, "NULL")
		}
	}
	for _, name := range cols.required() {
		if !present[name] {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(selects, ", "), quoteIdent(table))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entity.TripRecord
	for rowNum := 1; rows.Next(); rowNum++ {
		var start, end, from, to, userType, gender, birthYear sql.NullString
		if err := rows.Scan(&start, &end, &from, &to, &userType, &gender, &birthYear); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		records = append(records, entity.TripRecord{
			Row:          rowNum,
			StartTime:    strings.TrimSpace(start.String),
			EndTime:      strings.TrimSpace(end.String),
			StartStation: strings.TrimSpace(from.String),
			EndStation:   strings.TrimSpace(to.String),
			UserType:     strings.TrimSpace(userType.String),
			Gender:       strings.TrimSpace(gender.String),
			BirthYear:    parseBirthYear(strings.TrimSpace(birthYear.String)),
		})
	}
	return records, rows.Err()
}

func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}
		present[name] = true
	}
	return present, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
