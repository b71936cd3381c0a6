package analysis

import (
	"time"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
)

// ComputeDurationStats sums trip durations and computes their mean.
// Negative durations are kept in the sum and counted in NegativeDurations.
func ComputeDurationStats(view []entity.DerivedRecord) (*entity.DurationReport, error) {
	if len(view) == 0 {
		return nil, emptyView("duration stats")
	}

	report := &entity.DurationReport{
		Trips:    len(view),
		Shortest: view[0].Duration,
		Longest:  view[0].Duration,
	}
	for _, r := range view {
		report.Total += r.Duration
		if r.Duration < 0 {
			report.NegativeDurations++
		}
		if r.Duration < report.Shortest {
			report.Shortest = r.Duration
		}
		if r.Duration > report.Longest {
			report.Longest = r.Duration
		}
	}
	report.Mean = report.Total / time.Duration(report.Trips)

	return report, nil
}
