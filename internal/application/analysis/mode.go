package analysis

import (
	"fmt"

	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
)

// modeInt returns the key with the highest count, scanning keys in the given order so the first key
// in that order wins ties.
func modeInt(counts map[int]int, order []int) (key, count int) {
	key, count = order[0], -1
	for _, k := range order {
		if c := counts[k]; c > count {
			key, count = k, c
		}
	}
	return key, count
}

// modeString returns the key with the highest count; ties go to the lexicographically smallest key.
func modeString(counts map[string]int) (key string, count int) {
	count = -1
	for k, c := range counts {
		if c > count || (c == count && k < key) {
			key, count = k, c
		}
	}
	return key, count
}

func emptyView(report string) error {
	return fmt.Errorf("%s: %w", report, types.ErrEmptyView)
}
