package repository

import (
	"context"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
)

// RecordSource defines the interface for reading a city's raw trip records.
type RecordSource interface {
	// Load returns every trip of the city in source order. Failures to reach or read the
	// underlying storage wrap types.ErrSourceUnavailable.
	Load(ctx context.Context, city entity.City) ([]entity.TripRecord, error)
}

// SourceDescriber is implemented by record sources that can tell where a city's data lives.
type SourceDescriber interface {
	Describe(ctx context.Context, city entity.City) (string, error)
}
