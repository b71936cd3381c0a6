// Package analysis derives temporal fields from trip records, filters them and computes the
// descriptive statistics shown by the dashboard. Everything here is pure: inputs are never mutated.
package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
)

// timestampLayouts are tried in order. RFC3339 values keep their offset; nothing is converted.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// ParseTimestamp parses a source timestamp without any timezone conversion.
func ParseTimestamp(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	// Fractional seconds show up in some exports ("2017-01-01 00:07:57.000").
	if i := strings.IndexByte(value, '.'); i > 0 && strings.Count(value, ":") == 2 {
		value = value[:i]
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", types.ErrMalformedTimestamp, raw)
}

// Derive computes start month, weekday, hour and duration for a single record.
func Derive(rec entity.TripRecord) (entity.DerivedRecord, error) {
	start, err := ParseTimestamp(rec.StartTime)
	if err != nil {
		return entity.DerivedRecord{}, fmt.Errorf("row %d start time: %w", rec.Row, err)
	}
	end, err := ParseTimestamp(rec.EndTime)
	if err != nil {
		return entity.DerivedRecord{}, fmt.Errorf("row %d end time: %w", rec.Row, err)
	}

	return entity.DerivedRecord{
		TripRecord:   rec,
		Start:        start,
		End:          end,
		StartMonth:   start.Month(),
		StartWeekday: start.Weekday(),
		StartHour:    start.Hour(),
		Duration:     end.Sub(start),
	}, nil
}

// DeriveAll derives every record. Records with malformed timestamps are left out of the result
// and reported in skipped.
func DeriveAll(records []entity.TripRecord) (derived []entity.DerivedRecord, skipped []entity.SkippedRecord) {
	derived = make([]entity.DerivedRecord, 0, len(records))
	for _, rec := range records {
		d, err := Derive(rec)
		if err != nil {
			skipped = append(skipped, entity.SkippedRecord{Row: rec.Row, Err: err})
			continue
		}
		derived = append(derived, d)
	}
	return derived, skipped
}

// AvailableMonths returns the distinct start months present in records, in calendar order.
func AvailableMonths(records []entity.DerivedRecord) []time.Month {
	var seen [13]bool
	for _, r := range records {
		seen[r.StartMonth] = true
	}
	months := []time.Month{}
	for m := time.January; m <= time.December; m++ {
		if seen[m] {
			months = append(months, m)
		}
	}
	return months
}
