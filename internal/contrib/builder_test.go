package contrib

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSource struct {
	payload []byte
	err     error

	calls    int
	username string
	from, to time.Time
}

func (f *fakeSource) ContributionCalendar(_ context.Context, username string, from, to time.Time) ([]byte, error) {
	f.calls++
	f.username = username
	f.from, f.to = from, to
	return f.payload, f.err
}

func fixedClock(s string) func() time.Time {
	return func() time.Time { return date(s).Add(13 * time.Hour) }
}

func TestBuilderUsesRealData(t *testing.T) {
	src := &fakeSource{payload: []byte(oneWeekPayload)}
	b := &Builder{Source: src, Now: fixedClock("2025-10-19"), EarliestYear: 2023}

	data := b.Build(context.Background(), "octocat")

	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}
	if src.username != "octocat" {
		t.Errorf("username = %q", src.username)
	}
	if got := src.from.Format(time.RFC3339); got != "2024-10-20T00:00:00Z" {
		t.Errorf("from = %s", got)
	}
	if got := src.to.Format(time.RFC3339); got != "2025-10-19T23:59:59Z" {
		t.Errorf("to = %s", got)
	}

	if data.TotalContributions != 1753 {
		t.Errorf("TotalContributions = %d, want 1753", data.TotalContributions)
	}
	if diff := cmp.Diff([]int{2025, 2024, 2023}, data.YearNumbers()); diff != "" {
		t.Errorf("years mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		source Source
	}{
		{"no source", nil},
		{"transport error", &fakeSource{err: errors.New("dial tcp: connection refused")}},
		{"missing calendar", &fakeSource{payload: []byte(`{"user": {"contributionsCollection": {}}}`)}},
		{"null data", &fakeSource{payload: []byte(`null`)}},
	}

	want := Generate(date("2025-10-19"))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Builder{Source: tt.source, Now: fixedClock("2025-10-19")}

			got := b.Build(context.Background(), "octocat")
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("fallback differs from Generate (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuilderReadsClockOnce(t *testing.T) {
	tests := []struct {
		name   string
		source *fakeSource
	}{
		{"fallback", &fakeSource{err: errors.New("timeout")}},
		{"real", &fakeSource{payload: []byte(oneWeekPayload)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Each read of the clock lands on the next day.
			calls := 0
			now := func() time.Time {
				calls++
				return date("2025-10-19").AddDate(0, 0, calls-1).Add(23*time.Hour + 59*time.Minute)
			}
			b := &Builder{Source: tt.source, Now: now, EarliestYear: 2025}

			got := b.Build(context.Background(), "octocat")
			if calls != 1 {
				t.Errorf("clock read %d times, want 1", calls)
			}
			if _, to := TrailingYear(date("2025-10-19")); !tt.source.to.Equal(to) {
				t.Errorf("queried up to %s, want %s", tt.source.to, to)
			}
			if tt.source.err != nil {
				if diff := cmp.Diff(Generate(date("2025-10-19")), got); diff != "" {
					t.Errorf("fallback not generated for the first reading (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestBuilderRealErrors(t *testing.T) {
	b := &Builder{Now: fixedClock("2025-10-19")}
	if _, err := b.Real(context.Background(), "octocat"); !errors.Is(err, ErrNoSource) {
		t.Errorf("nil source: err = %v, want ErrNoSource", err)
	}

	cause := errors.New("HTTP 401")
	b.Source = &fakeSource{err: cause}
	if _, err := b.Real(context.Background(), "octocat"); !errors.Is(err, cause) {
		t.Errorf("source error not wrapped: %v", err)
	}

	b.Source = &fakeSource{payload: []byte(`{"user": {"contributionsCollection": {}}}`)}
	_, err := b.Real(context.Background(), "octocat")
	var mde *MalformedDataError
	if !errors.As(err, &mde) || mde.Field != "contributionCalendar" {
		t.Errorf("err = %v, want MalformedDataError on contributionCalendar", err)
	}
}

func TestBuilderLogsFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := &Builder{
		Source: &fakeSource{err: errors.New("boom")},
		Logger: zap.New(core),
		Now:    fixedClock("2025-10-19"),
	}

	b.Build(context.Background(), "octocat")

	entries := logs.FilterMessage("Using synthetic contribution data").All()
	if len(entries) != 1 {
		t.Fatalf("got %d fallback log entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["username"]; got != "octocat" {
		t.Errorf("logged username = %v", got)
	}
}

func TestTrailingYearLeapDay(t *testing.T) {
	from, to := TrailingYear(date("2024-02-29"))
	if got := from.Format(DateLayout); got != "2023-03-02" {
		t.Errorf("from = %s, want 2023-03-02", got)
	}
	if got := to.Format(time.RFC3339); got != "2024-02-29T23:59:59Z" {
		t.Errorf("to = %s", got)
	}
}
