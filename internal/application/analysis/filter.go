package analysis

import (
	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
)

// predicate decides whether a record belongs to the filtered view.
type predicate func(entity.DerivedRecord) bool

func monthPredicate(month entity.MonthSelector) predicate {
	if month.All() {
		return nil
	}
	want := month.Month()
	return func(r entity.DerivedRecord) bool { return r.StartMonth == want }
}

func dayPredicate(day entity.DaySelector) predicate {
	if day.All() {
		return nil
	}
	want := day.Weekday()
	return func(r entity.DerivedRecord) bool { return r.StartWeekday == want }
}

// Filter returns the records matching every active selector of spec, in their original order.
// The result is always a new slice; an empty result is not an error.
func Filter(records []entity.DerivedRecord, spec entity.FilterSpec) []entity.DerivedRecord {
	var preds []predicate
	for _, p := range []predicate{monthPredicate(spec.Month()), dayPredicate(spec.Day())} {
		if p != nil {
			preds = append(preds, p)
		}
	}

	view := make([]entity.DerivedRecord, 0, len(records))
	for _, r := range records {
		if matchesAll(r, preds) {
			view = append(view, r)
		}
	}
	return view
}

func matchesAll(r entity.DerivedRecord, preds []predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}
