package analysis

import (
	"testing"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/stretchr/testify/require"
)

func trip(start, end, from, to string) entity.TripRecord {
	return entity.TripRecord{StartTime: start, EndTime: end, StartStation: from, EndStation: to}
}

func derive(t *testing.T, records ...entity.TripRecord) []entity.DerivedRecord {
	t.Helper()
	for i := range records {
		records[i].Row = i + 1
	}
	derived, skipped := DeriveAll(records)
	require.Empty(t, skipped)
	return derived
}

// sampleRecords spans two months and several weekdays.
// 2024-01-01 is a Monday, 2024-03-01 a Friday.
func sampleRecords(t *testing.T) []entity.DerivedRecord {
	return derive(t,
		trip("2024-01-01 08:00:00", "2024-01-01 08:10:00", "A", "B"),
		trip("2024-01-02 09:00:00", "2024-01-02 09:30:00", "A", "C"),
		trip("2024-01-08 08:15:00", "2024-01-08 08:20:00", "B", "A"),
		trip("2024-03-01 17:00:00", "2024-03-01 17:45:00", "C", "A"),
		trip("2024-03-04 08:30:00", "2024-03-04 08:50:00", "A", "B"),
		trip("2024-03-05 12:00:00", "2024-03-05 12:05:00", "D", "D"),
	)
}

func spec(month entity.MonthSelector, day entity.DaySelector) entity.FilterSpec {
	return entity.NewFilterSpec(entity.City{Name: "chicago"}, month, day)
}
