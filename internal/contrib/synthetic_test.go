package contrib

import (
	"encoding/json"
	"testing"
	"time"
)

func date(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGenerateDeterministic(t *testing.T) {
	today := time.Date(2025, 10, 19, 15, 4, 5, 0, time.UTC)

	first, err := json.Marshal(Generate(today))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Same calendar date, different clock time.
	second, err := json.Marshal(Generate(today.Add(-10 * time.Hour)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if string(first) != string(second) {
		t.Error("two generations for the same date differ")
	}
}

func TestGenerateKnownDays(t *testing.T) {
	data := Generate(date("2025-10-30"))
	want := map[string]int{
		"2025-10-19": 0, // draw below the idle threshold
		"2025-10-22": 5,
		"2025-10-25": 3, // weekend multiplier
		"2025-10-26": 4,
		"2025-10-28": 10,
		"2025-10-30": 12,
	}

	got := make(map[string]int)
	for _, d := range data.Years[0].Days() {
		got[d.Date.Format(DateLayout)] = d.Count
	}
	for day, count := range want {
		c, ok := got[day]
		if !ok {
			t.Errorf("day %s missing from generated range", day)
			continue
		}
		if c != count {
			t.Errorf("count on %s = %d, want %d", day, c, count)
		}
	}
}

func TestGenerateTotals(t *testing.T) {
	data := Generate(date("2025-10-19"))

	if len(data.Years) != 1 {
		t.Fatalf("got %d years, want 1", len(data.Years))
	}
	year := data.Years[0]
	if year.Year != 2025 {
		t.Errorf("year = %d, want 2025", year.Year)
	}

	sum := 0
	for _, d := range year.Days() {
		sum += d.Count
	}
	if data.TotalContributions != sum {
		t.Errorf("TotalContributions = %d, sum of days = %d", data.TotalContributions, sum)
	}
	if year.Total != sum {
		t.Errorf("year total = %d, sum of days = %d", year.Total, sum)
	}
	if sum != 2994 {
		t.Errorf("total = %d, want 2994", sum)
	}
}

func TestGenerateLevelsMatchCounts(t *testing.T) {
	for _, d := range Generate(date("2025-10-19")).Years[0].Days() {
		if want := Classify(d.Count); d.Level != want {
			t.Errorf("%s: level %d for count %d, want %d",
				d.Date.Format(DateLayout), d.Level, d.Count, want)
		}
	}
}

func TestGenerateWeekIntegrity(t *testing.T) {
	tests := []struct {
		name  string
		today string
	}{
		{"mid week", "2025-10-22"},
		{"saturday", "2025-10-25"},
		{"sunday", "2025-10-19"},
		{"leap day", "2024-02-29"},
		{"after leap day", "2025-02-28"},
		{"new year", "2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today := date(tt.today)
			year := Generate(today).Years[0]
			weeks := year.Weeks

			if len(weeks) == 0 || len(weeks) > maxSyntheticWeeks {
				t.Fatalf("got %d weeks", len(weeks))
			}
			for i, w := range weeks {
				if len(w.Days) == 0 || len(w.Days) > daysPerWeek {
					t.Fatalf("week %d has %d days", i, len(w.Days))
				}
				if i < len(weeks)-1 && len(w.Days) != daysPerWeek {
					t.Errorf("inner week %d has %d days", i, len(w.Days))
				}
				if w.Days[0].Date.Weekday() != time.Sunday {
					t.Errorf("week %d starts on %s", i, w.Days[0].Date.Weekday())
				}
			}

			days := year.Days()
			for i := 1; i < len(days); i++ {
				if !days[i].Date.Equal(days[i-1].Date.AddDate(0, 0, 1)) {
					t.Fatalf("gap or duplicate between %s and %s",
						days[i-1].Date.Format(DateLayout), days[i].Date.Format(DateLayout))
				}
			}

			nominalStart := today.AddDate(-1, 0, 1)
			first := days[0].Date
			if first.After(nominalStart) || nominalStart.Sub(first) >= 7*24*time.Hour {
				t.Errorf("first day %s does not open the week of %s",
					first.Format(DateLayout), nominalStart.Format(DateLayout))
			}
			if last := days[len(days)-1].Date; !last.Equal(today) {
				t.Errorf("last day = %s, want %s", last.Format(DateLayout), tt.today)
			}
			if !year.Range.Start.Equal(first) || !year.Range.End.Equal(today) {
				t.Errorf("range = %v..%v", year.Range.Start, year.Range.End)
			}
		})
	}
}

func TestGenerateUsesLocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// 2025-10-20 01:00 in UTC+9 is still 2025-10-19 in UTC.
	local := time.Date(2025, 10, 20, 1, 0, 0, 0, loc)

	days := Generate(local).Years[0].Days()
	last := days[len(days)-1].Date
	if got := last.Format(DateLayout); got != "2025-10-20" {
		t.Errorf("last day = %s, want 2025-10-20", got)
	}
	if last.Location() != time.UTC {
		t.Errorf("dates are in %s, want UTC", last.Location())
	}
}
