package analysis

import (
	"time"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
)

var (
	monthOrder = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	hourOrder  = func() []int {
		hours := make([]int, 24)
		for h := range hours {
			hours[h] = h
		}
		return hours
	}()
	weekdayOrder = func() []int {
		days := make([]int, len(entity.WeekOrder))
		for i, d := range entity.WeekOrder {
			days[i] = int(d)
		}
		return days
	}()
)

// ComputeTemporalStats finds the most common month, weekday and start hour of the view.
// Month and weekday are only reported when the query did not pin them.
func ComputeTemporalStats(view []entity.DerivedRecord, month entity.MonthSelector, day entity.DaySelector) (*entity.TemporalReport, error) {
	if len(view) == 0 {
		return nil, emptyView("temporal stats")
	}

	months := make(map[int]int)
	weekdays := make(map[int]int)
	hours := make(map[int]int)
	report := &entity.TemporalReport{}

	for _, r := range view {
		months[int(r.StartMonth)]++
		weekdays[int(r.StartWeekday)]++
		hours[r.StartHour]++
		report.HourCounts[r.StartHour]++
	}

	if month.All() {
		m, count := modeInt(months, monthOrder)
		mostCommon := time.Month(m)
		report.MostCommonMonth = &mostCommon
		report.MonthTrips = count
	}

	if day.All() {
		d, count := modeInt(weekdays, weekdayOrder)
		mostCommon := time.Weekday(d)
		report.MostCommonWeekday = &mostCommon
		report.WeekdayTrips = count
	}

	report.MostCommonHour, report.HourTrips = modeInt(hours, hourOrder)
	return report, nil
}
