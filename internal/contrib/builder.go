package contrib

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrNoSource is returned by Builder.Real when no data source is configured.
var ErrNoSource = errors.New("no contribution data source")

// Source supplies the raw data object of a contributionsCollection query
// for a user and date range. Implementations report transport,
// authentication and query failures as errors.
type Source interface {
	ContributionCalendar(ctx context.Context, username string, from, to time.Time) ([]byte, error)
}

// Builder produces contribution data for a user, preferring real data and
// falling back to the synthetic generator.
type Builder struct {
	// Source is queried once per Build. Nil means no real data is available.
	Source Source
	Logger *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// EarliestYear is the oldest backfilled year; zero means DefaultEarliestYear.
	EarliestYear int
}

// Build returns the user's contribution data. It never fails: when real data
// cannot be fetched or mapped, the cause is logged and synthetic data for the
// same date is returned instead.
func (b *Builder) Build(ctx context.Context, username string) Data {
	today := b.today()
	data, err := b.real(ctx, username, today)
	if err == nil {
		return data
	}

	b.logger().Warn("Using synthetic contribution data",
		zap.String("username", username),
		zap.Error(err))
	return Generate(today)
}

// Real fetches and maps the trailing year of real contributions. The source
// is called at most once and errors are returned unchanged in kind: shape
// problems are *MalformedDataError, everything else comes from the source.
func (b *Builder) Real(ctx context.Context, username string) (Data, error) {
	return b.real(ctx, username, b.today())
}

func (b *Builder) real(ctx context.Context, username string, today time.Time) (Data, error) {
	if b.Source == nil {
		return Data{}, ErrNoSource
	}

	from, to := TrailingYear(today)

	raw, err := b.Source.ContributionCalendar(ctx, username, from, to)
	if err != nil {
		return Data{}, fmt.Errorf("fetch contribution calendar: %w", err)
	}

	cal, err := ParseCalendar(raw)
	if err != nil {
		return Data{}, err
	}

	b.logger().Debug("Mapped contribution calendar",
		zap.String("username", username),
		zap.Int("weeks", len(cal.Weeks)),
		zap.Int("total", cal.TotalContributions))
	return FromCalendar(cal, today, b.earliestYear()), nil
}

// TrailingYear returns the query window covering the year that ends on
// today: from the start of (today - 1 year + 1 day) to the last second of
// today, in UTC.
func TrailingYear(today time.Time) (from, to time.Time) {
	end := civilDate(today)
	from = end.AddDate(-1, 0, 1)
	to = end.Add(24*time.Hour - time.Second)
	return from, to
}

func (b *Builder) today() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (b *Builder) earliestYear() int {
	if b.EarliestYear != 0 {
		return b.EarliestYear
	}
	return DefaultEarliestYear
}

func (b *Builder) logger() *zap.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return zap.NewNop()
}
