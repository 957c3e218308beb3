package contrib

import (
	"fmt"
	"time"
)

// Stats summarises the visible days of one year.
type Stats struct {
	ActiveDays    int
	TotalDays     int
	AverageDay    int
	MaxDay        int
	CurrentStreak int
	LongestStreak int
}

// Summarize computes statistics for a year as of today.
func Summarize(year Year, today time.Time) Stats {
	days := year.Days()
	stats := Stats{TotalDays: len(days)}

	sum := 0
	for _, d := range days {
		sum += d.Count
		if d.Count > 0 {
			stats.ActiveDays++
		}
		if d.Count > stats.MaxDay {
			stats.MaxDay = d.Count
		}
	}
	if stats.TotalDays > 0 {
		stats.AverageDay = sum / stats.TotalDays
	}

	stats.CurrentStreak = currentStreak(days, today)
	stats.LongestStreak = longestStreak(days)
	return stats
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"Active: %d/%d days | Avg: %d/day | Max: %d/day | Streak: %d (longest %d)",
		s.ActiveDays, s.TotalDays, s.AverageDay, s.MaxDay, s.CurrentStreak, s.LongestStreak,
	)
}

// currentStreak counts consecutive active days ending today. A quiet today
// does not break the streak, since the day is not over yet.
func currentStreak(days []Day, today time.Time) int {
	end := civilDate(today)
	expected := end
	streak := 0

	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		if d.Date.After(expected) {
			continue
		}
		if !d.Date.Equal(expected) {
			break
		}
		if d.Count == 0 {
			if streak == 0 && expected.Equal(end) {
				expected = expected.AddDate(0, 0, -1)
				continue
			}
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}

	return streak
}

func longestStreak(days []Day) int {
	longest, current := 0, 0
	var prev time.Time

	for _, d := range days {
		if current > 0 && !d.Date.Equal(prev.AddDate(0, 0, 1)) {
			current = 0
		}
		if d.Count == 0 {
			current = 0
			continue
		}
		current++
		if current > longest {
			longest = current
		}
		prev = d.Date
	}

	return longest
}
