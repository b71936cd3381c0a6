package analysis

import (
	"sort"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
)

// ComputeUserStats counts user types and, when the city carries them, genders and birth years.
// Capabilities come from the city table; columns present in the data are never probed.
func ComputeUserStats(view []entity.DerivedRecord, city entity.City) (*entity.UserReport, error) {
	if len(view) == 0 {
		return nil, emptyView("user stats")
	}

	report := &entity.UserReport{UserTypes: entity.NewBreakdown()}
	var gender entity.Breakdown
	if city.HasGender {
		gender = entity.NewBreakdown()
		report.Gender = &gender
	}

	years := make(map[int]int)
	for _, r := range view {
		report.UserTypes.Add(r.UserType)
		if city.HasGender {
			gender.Add(r.Gender)
		}
		if city.HasBirthYear && r.BirthYear != nil {
			years[*r.BirthYear]++
		}
	}

	if len(years) > 0 {
		report.BirthYears = birthYearReport(years)
	}
	return report, nil
}

func birthYearReport(years map[int]int) *entity.BirthYearReport {
	order := make([]int, 0, len(years))
	known := 0
	for y, c := range years {
		order = append(order, y)
		known += c
	}
	sort.Ints(order)

	mostCommon, seen := modeInt(years, order)
	return &entity.BirthYearReport{
		Earliest:       order[0],
		MostRecent:     order[len(order)-1],
		MostCommon:     mostCommon,
		MostCommonSeen: seen,
		Known:          known,
	}
}
