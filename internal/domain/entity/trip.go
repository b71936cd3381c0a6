package entity

import "time"

// TripRecord is one trip as read from a record source, before any parsing of its timestamps.
type TripRecord struct {
	Row          int    `json:"row"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	StartStation string `json:"start_station"`
	EndStation   string `json:"end_station"`
	UserType     string `json:"user_type,omitempty"`
	Gender       string `json:"gender,omitempty"`
	BirthYear    *int   `json:"birth_year,omitempty"`
}

// DerivedRecord is a TripRecord augmented with the fields computed from its timestamps.
type DerivedRecord struct {
	TripRecord
	Start        time.Time     `json:"start"`
	End          time.Time     `json:"end"`
	StartMonth   time.Month    `json:"start_month"`
	StartWeekday time.Weekday  `json:"start_weekday"`
	StartHour    int           `json:"start_hour"`
	Duration     time.Duration `json:"duration"`
}

// SkippedRecord is a source row that could not be derived.
type SkippedRecord struct {
	Row int   `json:"row"`
	Err error `json:"-"`
}

// Dataset is the augmented record set of a single city.
type Dataset struct {
	City    City            `json:"city"`
	Records []DerivedRecord `json:"records"`
	Skipped []SkippedRecord `json:"skipped,omitempty"`
}

// SkippedCount returns how many source rows were excluded because of malformed timestamps.
func (d *Dataset) SkippedCount() int {
	return len(d.Skipped)
}
