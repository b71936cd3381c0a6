package entity

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// NotProvided replaces missing categorical values in user breakdowns.
const NotProvided = "Not Provided"

// TemporalReport holds the most frequent times of travel.
// MostCommonMonth and MostCommonWeekday are nil when the query already pinned that dimension.
type TemporalReport struct {
	MostCommonMonth   *time.Month   `json:"most_common_month,omitempty"`
	MonthTrips        int           `json:"month_trips,omitempty"`
	MostCommonWeekday *time.Weekday `json:"most_common_weekday,omitempty"`
	WeekdayTrips      int           `json:"weekday_trips,omitempty"`
	MostCommonHour    int           `json:"most_common_hour"`
	HourTrips         int           `json:"hour_trips"`
	HourCounts        [24]int       `json:"hour_counts"`
}

// StationCount is a station name with the number of trips that used it.
type StationCount struct {
	Name  string `json:"name"`
	Trips int    `json:"trips"`
}

// StationPair is a start/end combination with its trip count.
type StationPair struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Trips int    `json:"trips"`
}

// StationReport holds the most popular stations and trip.
type StationReport struct {
	MostCommonStart StationCount `json:"most_common_start_station"`
	MostCommonEnd   StationCount `json:"most_common_end_station"`
	MostCommonPair  StationPair  `json:"most_common_station_pair"`
}

// DurationReport holds total and mean travel time.
type DurationReport struct {
	Trips             int           `json:"trips"`
	Total             time.Duration `json:"total"`
	Mean              time.Duration `json:"mean"`
	Shortest          time.Duration `json:"shortest"`
	Longest           time.Duration `json:"longest"`
	NegativeDurations int           `json:"negative_durations,omitempty"`
}

// CategoryCount is one entry of a Breakdown.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Breakdown counts records per categorical label.
type Breakdown struct {
	Counts map[string]int `json:"counts"`
}

// NewBreakdown returns an empty breakdown.
func NewBreakdown() Breakdown {
	return Breakdown{Counts: make(map[string]int)}
}

// Add counts one occurrence of label. An empty label counts as NotProvided.
func (b Breakdown) Add(label string) {
	if label == "" {
		label = NotProvided
	}
	b.Counts[label]++
}

// Sorted returns the entries by count, highest first, ties by label.
func (b Breakdown) Sorted() []CategoryCount {
	out := make([]CategoryCount, 0, len(b.Counts))
	for label, count := range b.Counts {
		out = append(out, CategoryCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// BirthYearReport summarizes the birth years present in a view.
type BirthYearReport struct {
	Earliest       int `json:"earliest"`
	MostRecent     int `json:"most_recent"`
	MostCommon     int `json:"most_common"`
	MostCommonSeen int `json:"most_common_seen"`
	Known          int `json:"known"`
}

// UserReport holds user statistics.
// Gender is nil when the city has no gender data; BirthYears is nil when the city has no birth years
// or none of the records in the view carries one.
type UserReport struct {
	UserTypes  Breakdown        `json:"user_types"`
	Gender     *Breakdown       `json:"gender,omitempty"`
	BirthYears *BirthYearReport `json:"birth_years,omitempty"`
}

// QueryReport bundles the four reports of one query. A nil report means no data was available.
type QueryReport struct {
	ID          string          `json:"id"`
	City        string          `json:"city"`
	Month       string          `json:"month"`
	Day         string          `json:"day"`
	GeneratedAt time.Time       `json:"generated_at"`
	Loaded      int             `json:"loaded"`
	Skipped     int             `json:"skipped"`
	Matched     int             `json:"matched"`
	Temporal    *TemporalReport `json:"temporal,omitempty"`
	Stations    *StationReport  `json:"stations,omitempty"`
	Durations   *DurationReport `json:"durations,omitempty"`
	Users       *UserReport     `json:"users,omitempty"`
	NoData      []string        `json:"no_data,omitempty"`
}

// Empty reports whether the query matched no trips.
func (q *QueryReport) Empty() bool {
	return q.Matched == 0
}

// ReportRow is one label/value line of a rendered report.
type ReportRow struct {
	Label string
	Value string
}

// ReportSection is a titled group of rows, shared by the console and the exporters.
type ReportSection struct {
	Title string
	Rows  []ReportRow
}

const noDataAvailable = "No data available"

// FormatDuration renders d rounded to the second, with the raw seconds alongside.
func FormatDuration(d time.Duration) string {
	return fmt.Sprintf("%s (%.0f s)", d.Round(time.Second), d.Seconds())
}

// FormatHour renders an hour of day as HH:00.
func FormatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// Sections flattens the report into titled rows in display order.
func (q *QueryReport) Sections() []ReportSection {
	sections := []ReportSection{{
		Title: "Query",
		Rows: []ReportRow{
			{"Report ID", q.ID},
			{"City", q.City},
			{"Month", q.Month},
			{"Day", q.Day},
			{"Generated at", q.GeneratedAt.Format(time.RFC3339)},
			{"Records loaded", strconv.Itoa(q.Loaded)},
			{"Records skipped", strconv.Itoa(q.Skipped)},
			{"Trips matched", strconv.Itoa(q.Matched)},
		},
	}}

	sections = append(sections, q.TemporalSection(), q.StationSection(), q.DurationSection(), q.UserSection())
	return sections
}

// TemporalSection renders the times of travel.
func (q *QueryReport) TemporalSection() ReportSection {
	s := ReportSection{Title: "Most Frequent Times of Travel"}
	t := q.Temporal
	if t == nil {
		s.Rows = []ReportRow{{"Status", noDataAvailable}}
		return s
	}
	if t.MostCommonMonth != nil {
		s.Rows = append(s.Rows, ReportRow{"Most common month", fmt.Sprintf("%s (%d trips)", *t.MostCommonMonth, t.MonthTrips)})
	}
	if t.MostCommonWeekday != nil {
		s.Rows = append(s.Rows, ReportRow{"Most common day of week", fmt.Sprintf("%s (%d trips)", *t.MostCommonWeekday, t.WeekdayTrips)})
	}
	s.Rows = append(s.Rows, ReportRow{"Most common start hour", fmt.Sprintf("%s (%d trips)", FormatHour(t.MostCommonHour), t.HourTrips)})
	return s
}

// StationSection renders the most popular stations and trip.
func (q *QueryReport) StationSection() ReportSection {
	s := ReportSection{Title: "Most Popular Stations and Trip"}
	st := q.Stations
	if st == nil {
		s.Rows = []ReportRow{{"Status", noDataAvailable}}
		return s
	}
	s.Rows = []ReportRow{
		{"Most common start station", fmt.Sprintf("%s (%d trips)", st.MostCommonStart.Name, st.MostCommonStart.Trips)},
		{"Most common end station", fmt.Sprintf("%s (%d trips)", st.MostCommonEnd.Name, st.MostCommonEnd.Trips)},
		{"Most common trip", fmt.Sprintf("%s -> %s (%d trips)", st.MostCommonPair.Start, st.MostCommonPair.End, st.MostCommonPair.Trips)},
	}
	return s
}

// DurationSection renders travel times, flagging trips that end before they start.
func (q *QueryReport) DurationSection() ReportSection {
	s := ReportSection{Title: "Trip Duration"}
	d := q.Durations
	if d == nil {
		s.Rows = []ReportRow{{"Status", noDataAvailable}}
		return s
	}
	s.Rows = []ReportRow{
		{"Total travel time", FormatDuration(d.Total)},
		{"Mean travel time", FormatDuration(d.Mean)},
		{"Shortest trip", FormatDuration(d.Shortest)},
		{"Longest trip", FormatDuration(d.Longest)},
	}
	if d.NegativeDurations > 0 {
		s.Rows = append(s.Rows, ReportRow{"Trips ending before they start", strconv.Itoa(d.NegativeDurations)})
	}
	return s
}

// UserSection renders user types, genders and birth years, marking what the city does not record.
func (q *QueryReport) UserSection() ReportSection {
	s := ReportSection{Title: "User Stats"}
	u := q.Users
	if u == nil {
		s.Rows = []ReportRow{{"Status", noDataAvailable}}
		return s
	}
	for _, c := range u.UserTypes.Sorted() {
		s.Rows = append(s.Rows, ReportRow{"User type: " + c.Label, strconv.Itoa(c.Count)})
	}
	if u.Gender == nil {
		s.Rows = append(s.Rows, ReportRow{"Gender", "Not available for " + q.City})
	} else {
		for _, c := range u.Gender.Sorted() {
			s.Rows = append(s.Rows, ReportRow{"Gender: " + c.Label, strconv.Itoa(c.Count)})
		}
	}
	if u.BirthYears == nil {
		s.Rows = append(s.Rows, ReportRow{"Birth year", "Not available for " + q.City})
	} else {
		b := u.BirthYears
		s.Rows = append(s.Rows,
			ReportRow{"Earliest birth year", strconv.Itoa(b.Earliest)},
			ReportRow{"Most recent birth year", strconv.Itoa(b.MostRecent)},
			ReportRow{"Most common birth year", fmt.Sprintf("%d (%d riders)", b.MostCommon, b.MostCommonSeen)},
		)
	}
	return s
}
