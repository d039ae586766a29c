// Package streak computes consecutive-day runs over habit completion dates.
package streak

import (
	"sort"
	"time"

	"github.com/nhle/prodowl/internal/model"
)

// Calculate returns the current streak for the given completion dates.
//
// The streak is anchored at today or yesterday (calendar days in today's
// location): if the most recent date is older than yesterday the streak is
// broken and 0 is returned. Otherwise it counts back from the most recent
// date while each older date is exactly one day earlier, stopping at the
// first gap. Duplicates collapse and unparseable strings are ignored.
func Calculate(dates []string, today time.Time) int {
	days := parseDays(dates)
	if len(days) == 0 {
		return 0
	}

	todayDay := civilDay(today)
	latest := days[len(days)-1]
	if !latest.Equal(todayDay) && !latest.Equal(todayDay.AddDate(0, 0, -1)) {
		return 0
	}

	count := 1
	for i := len(days) - 1; i > 0; i-- {
		if daysBetween(days[i-1], days[i]) != 1 {
			break
		}
		count++
	}
	return count
}

// Longest returns the longest run of consecutive days anywhere in dates.
func Longest(dates []string) int {
	days := parseDays(dates)
	if len(days) == 0 {
		return 0
	}

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i-1], days[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// Today formats now as a completion date string.
func Today(now time.Time) string {
	return now.Format(model.DateLayout)
}

// Yesterday formats the day before now as a completion date string.
func Yesterday(now time.Time) string {
	return now.AddDate(0, 0, -1).Format(model.DateLayout)
}

// Normalize returns dates as a sorted, de-duplicated slice of valid date strings.
func Normalize(dates []string) []string {
	days := parseDays(dates)
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format(model.DateLayout)
	}
	return out
}

// parseDays parses, de-duplicates, and sorts dates ascending as UTC midnights.
func parseDays(dates []string) []time.Time {
	seen := make(map[string]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		if seen[s] {
			continue
		}
		seen[s] = true
		d, err := time.Parse(model.DateLayout, s)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// civilDay maps t to the UTC midnight of its calendar day in t's location.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(older, newer time.Time) int {
	return int(newer.Sub(older).Hours() / 24)
}
