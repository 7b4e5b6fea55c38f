package timeframe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func TestResolve_AllTokens(t *testing.T) {
	berlin := mustLoad(t, "Europe/Berlin")
	now := time.Date(2023, 5, 17, 15, 0, 0, 0, berlin) // Wednesday
	r := NewResolver(fixedClock(now))

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, berlin)
	}

	tests := []struct {
		token    string
		from, to time.Time
	}{
		{"thisweek", day(2023, 5, 15), day(2023, 5, 18)},
		{"thismonth", day(2023, 5, 1), day(2023, 5, 18)},
		{"thisyear", day(2023, 1, 1), day(2023, 5, 18)},
		{"lastweek", day(2023, 5, 8), day(2023, 5, 15)},
		{"lastmonth", day(2023, 4, 1), day(2023, 5, 1)},
		{"lastyear", day(2022, 1, 1), day(2023, 1, 1)},
		{"last7days", day(2023, 5, 10), day(2023, 5, 17)},
		{"last30days", day(2023, 4, 17), day(2023, 5, 17)},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := r.Resolve("Europe/Berlin", tt.token)
			require.NoError(t, err)
			assert.Equal(t, Token(tt.token), got.Timeframe)
			assert.True(t, tt.from.Equal(got.DateFrom), "from: want %s, got %s", tt.from, got.DateFrom)
			assert.True(t, tt.to.Equal(got.DateTo), "to: want %s, got %s", tt.to, got.DateTo)
		})
	}
}

func TestResolve_ThisMonthStartsOnFirstAndEndsTomorrow(t *testing.T) {
	zones := []string{"UTC", "Australia/Sydney", "America/Los_Angeles"}
	start := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

	for _, name := range zones {
		loc := mustLoad(t, name)
		for h := 0; h < 24*45; h += 5 {
			now := start.Add(time.Duration(h) * time.Hour)
			got := ResolveAt(loc, now, "thismonth")

			local := now.In(loc)
			assert.Equal(t, 1, got.DateFrom.Day())
			assert.Equal(t, local.Month(), got.DateFrom.Month())
			assert.Equal(t, AddDays(Today(loc, now), 1), got.DateTo)
		}
	}
}

func TestResolve_UnknownTokenFallsBackToLast30Days(t *testing.T) {
	now := time.Date(2023, 5, 17, 15, 0, 0, 0, time.UTC)
	r := NewResolver(fixedClock(now))

	unknown, err := r.Resolve("America/Chicago", "since-forever")
	require.NoError(t, err)
	last30, err := r.Resolve("America/Chicago", "last30days")
	require.NoError(t, err)

	assertSameRange(t, last30, unknown)
	assert.Equal(t, Last30Days, unknown.Timeframe)

	empty, err := r.Resolve("America/Chicago", "")
	require.NoError(t, err)
	assertSameRange(t, last30, empty)
}

func assertSameRange(t *testing.T, want, got Range) {
	t.Helper()
	assert.Equal(t, want.Timeframe, got.Timeframe)
	assert.True(t, want.DateFrom.Equal(got.DateFrom), "from: want %s, got %s", want.DateFrom, got.DateFrom)
	assert.True(t, want.DateTo.Equal(got.DateTo), "to: want %s, got %s", want.DateTo, got.DateTo)
}

func TestResolve_InvalidTimezoneFails(t *testing.T) {
	r := NewResolver()
	_, err := r.Resolve("Europe/Atlantis", "thismonth")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestParseToken(t *testing.T) {
	tok, ok := ParseToken("lastyear")
	assert.True(t, ok)
	assert.Equal(t, LastYear, tok)

	tok, ok = ParseToken("LASTYEAR")
	assert.False(t, ok)
	assert.Equal(t, DefaultToken, tok)
}
