package contrib

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar-date format used on the wire.
const DateLayout = "2006-01-02"

// DefaultEarliestYear is the oldest year offered by the year selector.
const DefaultEarliestYear = 2013

// Day is a single calendar date with its contribution count.
type Day struct {
	Date  time.Time
	Count int
	Level Level
}

type dayJSON struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level Level  `json:"level"`
}

// MarshalJSON encodes the date at day precision.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(dayJSON{
		Date:  d.Date.Format(DateLayout),
		Count: d.Count,
		Level: d.Level,
	})
}

// Week is a chronological run of one to seven days.
type Week struct {
	Days []Day `json:"days"`
}

// DateRange is the first and last emitted day of a year. Both are zero for a
// year without data.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// MarshalJSON encodes the range as day-precision strings, empty when unset.
func (r DateRange) MarshalJSON() ([]byte, error) {
	out := struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}{}
	if !r.Start.IsZero() {
		out.Start = r.Start.Format(DateLayout)
	}
	if !r.End.IsZero() {
		out.End = r.End.Format(DateLayout)
	}
	return json.Marshal(out)
}

// Year groups the weeks shown for one entry of the year selector.
type Year struct {
	Year  int       `json:"year"`
	Total int       `json:"total"`
	Range DateRange `json:"range"`
	Weeks []Week    `json:"weeks"`
}

// HasData reports whether the year carries any days. Backfilled years do not.
func (y Year) HasData() bool {
	return len(y.Weeks) > 0
}

// Days returns the year's days in chronological order.
func (y Year) Days() []Day {
	var days []Day
	for _, w := range y.Weeks {
		days = append(days, w.Days...)
	}
	return days
}

// Data is the complete contribution calendar handed to the renderer.
// Years are ordered newest first.
type Data struct {
	TotalContributions int    `json:"totalContributions"`
	Years              []Year `json:"years"`
}

// Year returns the entry for the given calendar year.
func (d Data) Year(year int) (Year, bool) {
	for _, y := range d.Years {
		if y.Year == year {
			return y, true
		}
	}
	return Year{}, false
}

// YearNumbers lists the selectable years, newest first.
func (d Data) YearNumbers() []int {
	years := make([]int, 0, len(d.Years))
	for _, y := range d.Years {
		years = append(years, y.Year)
	}
	return years
}

func rangeOf(weeks []Week) DateRange {
	if len(weeks) == 0 {
		return DateRange{}
	}
	first := weeks[0].Days
	last := weeks[len(weeks)-1].Days
	var r DateRange
	if len(first) > 0 {
		r.Start = first[0].Date
	}
	if len(last) > 0 {
		r.End = last[len(last)-1].Date
	}
	return r
}

// civilDate strips the clock from t, keeping its calendar date in UTC.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
