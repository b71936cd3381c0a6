package analysis

import (
	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
)

type stationPair struct {
	start, end string
}

// ComputeStationStats finds the most popular start station, end station and start/end combination.
func ComputeStationStats(view []entity.DerivedRecord) (*entity.StationReport, error) {
	if len(view) == 0 {
		return nil, emptyView("station stats")
	}

	starts := make(map[string]int)
	ends := make(map[string]int)
	pairs := make(map[stationPair]int)
	for _, r := range view {
		starts[r.StartStation]++
		ends[r.EndStation]++
		pairs[stationPair{r.StartStation, r.EndStation}]++
	}

	report := &entity.StationReport{}
	report.MostCommonStart.Name, report.MostCommonStart.Trips = modeString(starts)
	report.MostCommonEnd.Name, report.MostCommonEnd.Trips = modeString(ends)

	var best stationPair
	bestCount := -1
	for p, c := range pairs {
		if c > bestCount || (c == bestCount && pairLess(p, best)) {
			best, bestCount = p, c
		}
	}
	report.MostCommonPair = entity.StationPair{Start: best.start, End: best.end, Trips: bestCount}

	return report, nil
}

func pairLess(a, b stationPair) bool {
	if a.start != b.start {
		return a.start < b.start
	}
	return a.end < b.end
}
