package contrib

import (
	"math"
	"time"
)

const (
	daysPerWeek       = 7
	maxSyntheticWeeks = 54 // a year plus the partial weeks at either end

	// Linear congruential step applied to the date seed.
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280

	zeroShare         = 0.2 // draws at or below this are idle days
	maxDailyScale     = 15
	weekdayMultiplier = 1.5
	weekendMultiplier = 0.7
)

// Generate builds a plausible year of contributions ending on today's date.
// The result depends only on the calendar date of today: each day's count is
// drawn from a hash of the date itself, so repeated calls agree exactly.
//
// The range starts on the Sunday on or before (today - 1 year + 1 day) and
// is grouped into Sunday-started weeks; the last week ends on today and may
// be short. The total is the exact sum of the emitted counts.
func Generate(today time.Time) Data {
	end := civilDate(today)
	start := end.AddDate(-1, 0, 1)
	start = start.AddDate(0, 0, -int(start.Weekday()))

	var weeks []Week
	total := 0
	current := start
	for w := 0; w < maxSyntheticWeeks && !current.After(end); w++ {
		days := make([]Day, 0, daysPerWeek)
		for i := 0; i < daysPerWeek && !current.After(end); i++ {
			count := syntheticCount(current)
			total += count
			days = append(days, Day{
				Date:  current,
				Count: count,
				Level: Classify(count),
			})
			current = current.AddDate(0, 0, 1)
		}
		weeks = append(weeks, Week{Days: days})
	}

	return Data{
		TotalContributions: total,
		Years: []Year{{
			Year:  end.Year(),
			Total: total,
			Range: rangeOf(weeks),
			Weeks: weeks,
		}},
	}
}

// syntheticCount returns the generated count for a date.
func syntheticCount(date time.Time) int {
	r := seededDraw(date)
	if r <= zeroShare {
		return 0
	}

	multiplier := weekendMultiplier
	if wd := date.Weekday(); wd >= time.Monday && wd <= time.Friday {
		multiplier = weekdayMultiplier
	}
	return int(math.Floor(r * maxDailyScale * multiplier))
}

// seededDraw maps a date to a value in [0, 1).
func seededDraw(date time.Time) float64 {
	seed := date.Year() + int(date.Month()) + date.Day()
	return float64((seed*lcgMultiplier+lcgIncrement)%lcgModulus) / lcgModulus
}
