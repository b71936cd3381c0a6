package analysis

import (
	"testing"
	"time"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTemporalStats(t *testing.T) {
	report, err := ComputeTemporalStats(sampleRecords(t), entity.AllMonths, entity.AllDays)
	require.NoError(t, err)

	require.NotNil(t, report.MostCommonMonth)
	assert.Equal(t, time.January, *report.MostCommonMonth)
	assert.Equal(t, 3, report.MonthTrips)
	require.NotNil(t, report.MostCommonWeekday)
	assert.Equal(t, time.Monday, *report.MostCommonWeekday)
	assert.Equal(t, 3, report.WeekdayTrips)
	assert.Equal(t, 8, report.MostCommonHour)
	assert.Equal(t, 3, report.HourTrips)
	assert.Equal(t, 1, report.HourCounts[17])
}

func TestComputeTemporalStats_PinnedDimensionsAreOmitted(t *testing.T) {
	records := sampleRecords(t)

	report, err := ComputeTemporalStats(records, entity.MonthOf(time.January), entity.AllDays)
	require.NoError(t, err)
	assert.Nil(t, report.MostCommonMonth)
	assert.NotNil(t, report.MostCommonWeekday)

	report, err = ComputeTemporalStats(records, entity.AllMonths, entity.DayOf(time.Monday))
	require.NoError(t, err)
	assert.NotNil(t, report.MostCommonMonth)
	assert.Nil(t, report.MostCommonWeekday)

	report, err = ComputeTemporalStats(records, entity.MonthOf(time.March), entity.DayOf(time.Monday))
	require.NoError(t, err)
	assert.Nil(t, report.MostCommonMonth)
	assert.Nil(t, report.MostCommonWeekday)
}

func TestComputeTemporalStats_TieBreaks(t *testing.T) {
	var records []entity.TripRecord
	// Five trips in January and five in March; March listed first so input order cannot decide.
	for i := 0; i < 5; i++ {
		records = append(records, trip("2024-03-06 10:00", "2024-03-06 10:10", "A", "B"))
	}
	for i := 0; i < 5; i++ {
		records = append(records, trip("2024-01-03 15:00", "2024-01-03 15:10", "A", "B"))
	}
	// One Sunday trip and one Monday trip in February at hours 22 and 4.
	records = append(records,
		trip("2024-02-04 22:00", "2024-02-04 22:10", "A", "B"),
		trip("2024-02-05 04:00", "2024-02-05 04:10", "A", "B"),
	)
	view := derive(t, records...)

	for run := 0; run < 20; run++ {
		report, err := ComputeTemporalStats(view, entity.AllMonths, entity.AllDays)
		require.NoError(t, err)
		assert.Equal(t, time.January, *report.MostCommonMonth)
		// Wednesday holds all ten trips of the two tied months.
		assert.Equal(t, time.Wednesday, *report.MostCommonWeekday)
		// Hours 10 and 15 both have five trips.
		assert.Equal(t, 10, report.MostCommonHour)
	}

	weekend := derive(t,
		trip("2024-02-04 22:00", "2024-02-04 22:10", "A", "B"),
		trip("2024-02-05 22:00", "2024-02-05 22:10", "A", "B"),
	)
	report, err := ComputeTemporalStats(weekend, entity.AllMonths, entity.AllDays)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, *report.MostCommonWeekday, "Monday precedes Sunday in week order")
}

func TestComputeStationStats(t *testing.T) {
	report, err := ComputeStationStats(sampleRecords(t))
	require.NoError(t, err)

	assert.Equal(t, entity.StationCount{Name: "A", Trips: 3}, report.MostCommonStart)
	// A and B both end two trips.
	assert.Equal(t, entity.StationCount{Name: "A", Trips: 2}, report.MostCommonEnd)
	assert.Equal(t, entity.StationPair{Start: "A", End: "B", Trips: 2}, report.MostCommonPair)
}

func TestComputeStationStats_PairTieBreak(t *testing.T) {
	view := derive(t,
		trip("2024-01-01 08:00", "2024-01-01 08:10", "B", "A"),
		trip("2024-01-01 08:00", "2024-01-01 08:10", "A", "C"),
		trip("2024-01-01 08:00", "2024-01-01 08:10", "A", "B"),
	)
	for run := 0; run < 20; run++ {
		report, err := ComputeStationStats(view)
		require.NoError(t, err)
		assert.Equal(t, entity.StationPair{Start: "A", End: "B", Trips: 1}, report.MostCommonPair)
		assert.Equal(t, "A", report.MostCommonEnd.Name)
	}
}

func TestComputeDurationStats(t *testing.T) {
	view := derive(t,
		trip("2024-01-05 08:00", "2024-01-05 08:20", "A", "B"),
		trip("2024-01-05 09:00", "2024-01-05 09:10", "A", "B"),
		trip("2024-01-05 10:00", "2024-01-05 09:50", "A", "B"),
	)

	report, err := ComputeDurationStats(view)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Trips)
	assert.Equal(t, 20*time.Minute, report.Total)
	assert.Equal(t, 20*time.Minute/3, report.Mean)
	assert.Equal(t, -10*time.Minute, report.Shortest)
	assert.Equal(t, 20*time.Minute, report.Longest)
	assert.Equal(t, 1, report.NegativeDurations)
}

func TestComputeUserStats(t *testing.T) {
	year := func(y int) *int { return &y }
	records := []entity.TripRecord{
		{StartTime: "2024-01-01 08:00", EndTime: "2024-01-01 08:10", UserType: "Subscriber", Gender: "Male", BirthYear: year(1990)},
		{StartTime: "2024-01-01 08:00", EndTime: "2024-01-01 08:10", UserType: "Subscriber", Gender: "Female", BirthYear: year(1985)},
		{StartTime: "2024-01-01 08:00", EndTime: "2024-01-01 08:10", UserType: "Customer", BirthYear: year(1990)},
		{StartTime: "2024-01-01 08:00", EndTime: "2024-01-01 08:10", Gender: "Female", BirthYear: year(2001)},
	}
	view := derive(t, records...)
	city := entity.City{Name: "chicago", HasGender: true, HasBirthYear: true}

	report, err := ComputeUserStats(view, city)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Subscriber": 2, "Customer": 1, entity.NotProvided: 1}, report.UserTypes.Counts)
	require.NotNil(t, report.Gender)
	assert.Equal(t, map[string]int{"Male": 1, "Female": 2, entity.NotProvided: 1}, report.Gender.Counts)
	require.NotNil(t, report.BirthYears)
	assert.Equal(t, entity.BirthYearReport{Earliest: 1985, MostRecent: 2001, MostCommon: 1990, MostCommonSeen: 2, Known: 4}, *report.BirthYears)

	sorted := report.UserTypes.Sorted()
	assert.Equal(t, []entity.CategoryCount{
		{Label: "Subscriber", Count: 2},
		{Label: "Customer", Count: 1},
		{Label: entity.NotProvided, Count: 1},
	}, sorted)
}

func TestComputeUserStats_RespectsCityCapabilities(t *testing.T) {
	year := 1990
	view := derive(t, entity.TripRecord{
		StartTime: "2024-01-01 08:00",
		EndTime:   "2024-01-01 08:10",
		UserType:  "Subscriber",
		Gender:    "Male",
		BirthYear: &year,
	})

	report, err := ComputeUserStats(view, entity.City{Name: "washington"})
	require.NoError(t, err)
	assert.Nil(t, report.Gender, "a city without gender data never gets gender counts")
	assert.Nil(t, report.BirthYears)
	assert.Equal(t, map[string]int{"Subscriber": 1}, report.UserTypes.Counts)
}

func TestComputeUserStats_GenderApplicableButMissing(t *testing.T) {
	view := derive(t, trip("2024-01-01 08:00", "2024-01-01 08:10", "A", "B"))

	report, err := ComputeUserStats(view, entity.City{Name: "chicago", HasGender: true, HasBirthYear: true})
	require.NoError(t, err)
	require.NotNil(t, report.Gender)
	assert.Equal(t, map[string]int{entity.NotProvided: 1}, report.Gender.Counts)
	assert.Nil(t, report.BirthYears, "no record carries a birth year")
}

func TestStatistics_EmptyViewReportsNoData(t *testing.T) {
	view := Filter(sampleRecords(t), spec(entity.MonthOf(time.December), entity.AllDays))
	require.Empty(t, view)

	temporal, err := ComputeTemporalStats(view, entity.MonthOf(time.December), entity.AllDays)
	assert.Nil(t, temporal)
	assert.ErrorIs(t, err, types.ErrEmptyView)

	stations, err := ComputeStationStats(view)
	assert.Nil(t, stations)
	assert.ErrorIs(t, err, types.ErrEmptyView)

	durations, err := ComputeDurationStats(view)
	assert.Nil(t, durations)
	assert.ErrorIs(t, err, types.ErrEmptyView)

	users, err := ComputeUserStats(view, entity.City{Name: "chicago", HasGender: true})
	assert.Nil(t, users)
	assert.ErrorIs(t, err, types.ErrEmptyView)
}

func TestEndToEndScenario(t *testing.T) {
	records := []entity.TripRecord{
		trip("2024-01-05 08:00", "2024-01-05 08:20", "A", "B"),
		trip("2024-01-05 09:00", "2024-01-05 09:10", "A", "B"),
		trip("2024-02-10 08:00", "2024-02-10 08:30", "C", "D"),
	}
	derived := derive(t, records...)
	view := Filter(derived, spec(entity.AllMonths, entity.AllDays))

	stations, err := ComputeStationStats(view)
	require.NoError(t, err)
	assert.Equal(t, "A", stations.MostCommonStart.Name)
	assert.Equal(t, "B", stations.MostCommonEnd.Name)
	assert.Equal(t, "A", stations.MostCommonPair.Start)
	assert.Equal(t, "B", stations.MostCommonPair.End)

	durations, err := ComputeDurationStats(view)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Minute, durations.Mean)
	assert.Equal(t, time.Hour, durations.Total)
}

func TestStatistics_DoNotMutateView(t *testing.T) {
	view := sampleRecords(t)
	snapshot := append([]entity.DerivedRecord(nil), view...)

	_, _ = ComputeTemporalStats(view, entity.AllMonths, entity.AllDays)
	_, _ = ComputeStationStats(view)
	_, _ = ComputeDurationStats(view)
	_, _ = ComputeUserStats(view, entity.City{HasGender: true, HasBirthYear: true})

	assert.Equal(t, snapshot, view)
}
