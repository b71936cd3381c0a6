// Package source implements the record sources that back each city: local CSV files, CSV objects
// in S3 and SQLite tables.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/diillson/bikeshare-dashboard-go/internal/domain/repository"
	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
)

// Router dispatches each city to the backend of its source kind.
type Router struct {
	backends map[entity.SourceKind]repository.RecordSource
}

// NewRouter creates a router over the given backends.
func NewRouter(backends map[entity.SourceKind]repository.RecordSource) *Router {
	return &Router{backends: backends}
}

func (r *Router) backend(city entity.City) (repository.RecordSource, error) {
	b, ok := r.backends[city.Source.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no backend for source kind %q", types.ErrSourceUnavailable, city.Name, city.Source.Kind)
	}
	return b, nil
}

// Load implements repository.RecordSource.
func (r *Router) Load(ctx context.Context, city entity.City) ([]entity.TripRecord, error) {
	b, err := r.backend(city)
	if err != nil {
		return nil, err
	}
	return b.Load(ctx, city)
}

// Describe implements repository.SourceDescriber.
func (r *Router) Describe(ctx context.Context, city entity.City) (string, error) {
	b, err := r.backend(city)
	if err != nil {
		return "", err
	}
	return describe(ctx, b, city)
}

func describe(ctx context.Context, src repository.RecordSource, city entity.City) (string, error) {
	if d, ok := src.(repository.SourceDescriber); ok {
		return d.Describe(ctx, city)
	}
	return city.Name, nil
}

// NewFromConfig builds the city table and the record source described by cfg.
// Without configured cities the default table is used.
func NewFromConfig(cfg *types.Config) (*entity.CityTable, repository.RecordSource) {
	columns := make(map[string]Columns)
	var cities []entity.City

	for _, cc := range cfg.Cities {
		city := cityFromConfig(cc, cfg.AWS)
		cities = append(cities, city)
		columns[city.Name] = ColumnsFrom(cc.Columns)
	}

	table := entity.DefaultCityTable()
	if len(cities) > 0 {
		table = entity.NewCityTable(cities...)
	}

	var src repository.RecordSource = NewRouter(map[entity.SourceKind]repository.RecordSource{
		entity.SourceCSV:    NewCSVSource(cfg.DataDir, columns),
		entity.SourceSQLite: NewSQLiteSource(cfg.DataDir, columns),
		entity.SourceS3:     NewS3Source(cfg.AWS.Profile, cfg.AWS.Region, columns),
	})
	if cfg.Cache {
		src = NewCachedSource(src)
	}
	return table, src
}

func cityFromConfig(cc types.CityConfig, awsCfg types.AWSConfig) entity.City {
	kind := entity.SourceKind(cc.Source)
	if kind == "" {
		kind = entity.SourceCSV
	}
	bucket := cc.Bucket
	if bucket == "" {
		bucket = awsCfg.Bucket
	}
	key := cc.Key
	if key == "" {
		key = cc.Path
	}

	return entity.City{
		Name:    normalizeName(cc.Name),
		Aliases: cc.Aliases,
		Source: entity.SourceLocation{
			Kind:   kind,
			Path:   cc.Path,
			Bucket: bucket,
			Key:    key,
			Table:  cc.Table,
		},
		HasGender:    cc.HasGender,
		HasBirthYear: cc.HasBirthYear,
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
