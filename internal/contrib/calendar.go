package contrib

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMalformedData matches every MalformedDataError via errors.Is.
var ErrMalformedData = errors.New("malformed contribution data")

// MalformedDataError reports a calendar payload that lacks a required field
// or carries a value that cannot be mapped.
type MalformedDataError struct {
	Field string
	Err   error
}

func (e *MalformedDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed contribution data at %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed contribution data: missing %s", e.Field)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMalformedData) true for any MalformedDataError.
func (e *MalformedDataError) Is(target error) bool {
	return target == ErrMalformedData
}

// Calendar is a validated contribution calendar as reported by GitHub,
// before levels are assigned.
type Calendar struct {
	TotalContributions int
	Weeks              []CalendarWeek
}

// CalendarWeek is one column of the upstream calendar.
type CalendarWeek struct {
	Days []CalendarDay
}

// CalendarDay is a single upstream day.
type CalendarDay struct {
	Date  time.Time
	Count int
}

// Wire shape of the GraphQL "data" object. Pointers distinguish absent
// fields from zero values.
type calendarResponse struct {
	User *struct {
		ContributionsCollection *struct {
			ContributionCalendar *wireCalendar `json:"contributionCalendar"`
		} `json:"contributionsCollection"`
	} `json:"user"`
}

type wireCalendar struct {
	TotalContributions *int        `json:"totalContributions"`
	Weeks              *[]wireWeek `json:"weeks"`
}

type wireWeek struct {
	ContributionDays *[]wireDay `json:"contributionDays"`
}

type wireDay struct {
	ContributionCount *int   `json:"contributionCount"`
	Date              string `json:"date"`
}

// ParseCalendar decodes the data object of a contributionsCollection query.
// Any shape violation is returned as a *MalformedDataError.
func ParseCalendar(raw []byte) (Calendar, error) {
	var resp calendarResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Calendar{}, &MalformedDataError{Field: "data", Err: err}
	}
	if resp.User == nil {
		return Calendar{}, &MalformedDataError{Field: "user"}
	}
	if resp.User.ContributionsCollection == nil {
		return Calendar{}, &MalformedDataError{Field: "user.contributionsCollection"}
	}
	wc := resp.User.ContributionsCollection.ContributionCalendar
	if wc == nil {
		return Calendar{}, &MalformedDataError{Field: "contributionCalendar"}
	}
	if wc.TotalContributions == nil {
		return Calendar{}, &MalformedDataError{Field: "contributionCalendar.totalContributions"}
	}
	if *wc.TotalContributions < 0 {
		return Calendar{}, &MalformedDataError{
			Field: "contributionCalendar.totalContributions",
			Err:   fmt.Errorf("negative total %d", *wc.TotalContributions),
		}
	}
	if wc.Weeks == nil {
		return Calendar{}, &MalformedDataError{Field: "contributionCalendar.weeks"}
	}

	cal := Calendar{TotalContributions: *wc.TotalContributions}
	for i, ww := range *wc.Weeks {
		field := fmt.Sprintf("weeks[%d].contributionDays", i)
		if ww.ContributionDays == nil {
			return Calendar{}, &MalformedDataError{Field: field}
		}
		if n := len(*ww.ContributionDays); n > daysPerWeek {
			return Calendar{}, &MalformedDataError{Field: field, Err: fmt.Errorf("%d days in one week", n)}
		}

		var week CalendarWeek
		for j, wd := range *ww.ContributionDays {
			dayField := fmt.Sprintf("%s[%d]", field, j)
			if wd.ContributionCount == nil {
				return Calendar{}, &MalformedDataError{Field: dayField + ".contributionCount"}
			}
			if *wd.ContributionCount < 0 {
				return Calendar{}, &MalformedDataError{
					Field: dayField + ".contributionCount",
					Err:   fmt.Errorf("negative count %d", *wd.ContributionCount),
				}
			}
			date, err := time.Parse(DateLayout, wd.Date)
			if err != nil {
				return Calendar{}, &MalformedDataError{Field: dayField + ".date", Err: err}
			}
			week.Days = append(week.Days, CalendarDay{Date: date, Count: *wd.ContributionCount})
		}
		if len(week.Days) > 0 {
			cal.Weeks = append(cal.Weeks, week)
		}
	}

	return cal, nil
}

// FromCalendar assigns levels to a parsed calendar and wraps it as the
// current year. The upstream week grouping is kept as is, and the total is
// GitHub's own figure, which can include private contributions that are not
// broken down per day.
//
// Years from today.Year()-1 down to earliestYear are backfilled with empty
// entries so the year selector has stable choices.
func FromCalendar(cal Calendar, today time.Time, earliestYear int) Data {
	weeks := make([]Week, 0, len(cal.Weeks))
	for _, cw := range cal.Weeks {
		days := make([]Day, 0, len(cw.Days))
		for _, cd := range cw.Days {
			days = append(days, Day{
				Date:  cd.Date,
				Count: cd.Count,
				Level: Classify(cd.Count),
			})
		}
		weeks = append(weeks, Week{Days: days})
	}

	current := today.Year()
	years := []Year{{
		Year:  current,
		Total: cal.TotalContributions,
		Range: rangeOf(weeks),
		Weeks: weeks,
	}}
	for y := current - 1; y >= earliestYear; y-- {
		years = append(years, Year{Year: y})
	}

	return Data{
		TotalContributions: cal.TotalContributions,
		Years:              years,
	}
}
