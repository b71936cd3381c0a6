package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
)

// All is the selector keyword that disables a filter dimension.
const All = "all"

// MonthSelector is either AllMonths or a month 1..12.
type MonthSelector int

// AllMonths disables month filtering. It is the zero value.
const AllMonths MonthSelector = 0

// MonthOf returns the selector pinned to m.
func MonthOf(m time.Month) MonthSelector {
	return MonthSelector(m)
}

// All reports whether the selector matches every month.
func (s MonthSelector) All() bool {
	return s == AllMonths
}

// Month returns the pinned month. Only meaningful when All is false.
func (s MonthSelector) Month() time.Month {
	return time.Month(s)
}

// String returns the month name, or "all".
func (s MonthSelector) String() string {
	if s.All() {
		return All
	}
	return s.Month().String()
}

// DaySelector is either AllDays or one weekday.
type DaySelector int

// AllDays disables weekday filtering. It is the zero value.
const AllDays DaySelector = 0

// DayOf returns the selector pinned to d.
func DayOf(d time.Weekday) DaySelector {
	return DaySelector(d + 1)
}

// All reports whether the selector matches every weekday.
func (s DaySelector) All() bool {
	return s == AllDays
}

// Weekday returns the pinned weekday. Only meaningful when All is false.
func (s DaySelector) Weekday() time.Weekday {
	return time.Weekday(s - 1)
}

// String returns the weekday name, or "all".
func (s DaySelector) String() string {
	if s.All() {
		return All
	}
	return s.Weekday().String()
}

// WeekOrder lists the weekdays Monday first.
var WeekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// FilterSpec defines the scope of one query. Build it with NewFilterSpec; it cannot be changed afterwards.
type FilterSpec struct {
	city  City
	month MonthSelector
	day   DaySelector
}

// NewFilterSpec creates an immutable filter spec.
func NewFilterSpec(city City, month MonthSelector, day DaySelector) FilterSpec {
	return FilterSpec{city: city, month: month, day: day}
}

// City returns the city the query reads.
func (f FilterSpec) City() City { return f.city }

// Month returns the month selector.
func (f FilterSpec) Month() MonthSelector { return f.month }

// Day returns the weekday selector.
func (f FilterSpec) Day() DaySelector { return f.day }

// String renders the spec as "city=... month=... day=..." for logs.
func (f FilterSpec) String() string {
	return fmt.Sprintf("city=%s month=%s day=%s", f.city.Name, f.month, f.day)
}

// Validate normalizes raw input (case and surrounding whitespace) and checks it against the allowed set.
func Validate(raw string, allowed []string) (string, error) {
	value := normalize(raw)
	for _, a := range allowed {
		if value == normalize(a) {
			return value, nil
		}
	}
	return "", fmt.Errorf("%w: %q, expected one of: %s", types.ErrInvalidSelection, strings.TrimSpace(raw), strings.Join(allowed, ", "))
}

// ParseCity resolves raw input against the capability table.
func ParseCity(raw string, table *CityTable) (City, error) {
	value, err := Validate(raw, table.Accepted())
	if err != nil {
		return City{}, err
	}
	city, _ := table.Lookup(value)
	return city, nil
}

// MonthOptions returns the lowercase names of the given months followed by "all".
// A nil slice offers all twelve months.
func MonthOptions(available []time.Month) []string {
	if available == nil {
		for m := time.January; m <= time.December; m++ {
			available = append(available, m)
		}
	}
	options := make([]string, 0, len(available)+1)
	for _, m := range available {
		options = append(options, strings.ToLower(m.String()))
	}
	return append(options, All)
}

// ParseMonth accepts a month name, a month number or "all". When available is not nil the month
// must be one of them.
func ParseMonth(raw string, available []time.Month) (MonthSelector, error) {
	options := MonthOptions(available)
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 1 && n <= 12 {
		raw = time.Month(n).String()
	}
	value, err := Validate(raw, options)
	if err != nil {
		return AllMonths, err
	}
	if value == All {
		return AllMonths, nil
	}
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == value {
			return MonthOf(m), nil
		}
	}
	return AllMonths, fmt.Errorf("%w: %q", types.ErrInvalidSelection, raw)
}

// DayOptions returns the lowercase weekday names, Monday first, followed by "all".
func DayOptions() []string {
	options := make([]string, 0, len(WeekOrder)+1)
	for _, d := range WeekOrder {
		options = append(options, strings.ToLower(d.String()))
	}
	return append(options, All)
}

// ParseDay accepts a weekday name or "all".
func ParseDay(raw string) (DaySelector, error) {
	value, err := Validate(raw, DayOptions())
	if err != nil {
		return AllDays, err
	}
	if value == All {
		return AllDays, nil
	}
	for _, d := range WeekOrder {
		if strings.ToLower(d.String()) == value {
			return DayOf(d), nil
		}
	}
	return AllDays, fmt.Errorf("%w: %q", types.ErrInvalidSelection, raw)
}
