package timeframe

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestDaysToPeriodBeginning_Berlin(t *testing.T) {
	berlin := mustLoad(t, "Europe/Berlin")
	now := time.Date(2023, 5, 15, 10, 30, 0, 0, berlin) // Monday

	assert.Equal(t, 0, DaysToWeekBeginning(berlin, now, 0))
	assert.Equal(t, 14, DaysToMonthBeginning(berlin, now, 0))
	assert.Equal(t, 134, DaysToYearBeginning(berlin, now, 0))
}

func TestDaysToPeriodBeginning_Modifiers(t *testing.T) {
	berlin := mustLoad(t, "Europe/Berlin")
	now := time.Date(2023, 5, 15, 10, 30, 0, 0, berlin)

	assert.Equal(t, 7, DaysToWeekBeginning(berlin, now, 1))
	assert.Equal(t, -7, DaysToWeekBeginning(berlin, now, -1))
	assert.Equal(t, 44, DaysToMonthBeginning(berlin, now, 1), "April 1st")
	assert.Equal(t, -17, DaysToMonthBeginning(berlin, now, -1), "June 1st")
	assert.Equal(t, 134+365, DaysToYearBeginning(berlin, now, 1))
}

func TestDaysToWeekBeginning_RangeAcrossZones(t *testing.T) {
	zones := []string{"UTC", "Europe/Berlin", "America/New_York", "Pacific/Kiritimati", "Pacific/Pago_Pago", "Asia/Kolkata"}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, name := range zones {
		loc := mustLoad(t, name)
		for h := 0; h < 24*400; h += 7 {
			now := start.Add(time.Duration(h) * time.Hour)
			days := DaysToWeekBeginning(loc, now, 0)

			require.GreaterOrEqual(t, days, 0, "%s at %s", name, now)
			require.LessOrEqual(t, days, 6, "%s at %s", name, now)
			isMonday := now.In(loc).Weekday() == time.Monday
			require.Equal(t, isMonday, days == 0, "%s at %s", name, now)
		}
	}
}

func TestDaysToPeriodBeginning_LocalDayNotUTCDay(t *testing.T) {
	instant := time.Date(2023, 5, 15, 5, 0, 0, 0, time.UTC)

	// 19:00 on Monday May 15th in Kiritimati, 18:00 on Sunday May 14th in Pago Pago.
	assert.Equal(t, 0, DaysToWeekBeginning(mustLoad(t, "Pacific/Kiritimati"), instant, 0))
	assert.Equal(t, 6, DaysToWeekBeginning(mustLoad(t, "Pacific/Pago_Pago"), instant, 0))
}

func TestDaysToPeriodBeginning_AcrossDST(t *testing.T) {
	berlin := mustLoad(t, "Europe/Berlin")

	// Clocks jump forward on 2023-03-26; the month still counts whole days.
	now := time.Date(2023, 3, 31, 23, 59, 0, 0, berlin)
	assert.Equal(t, 30, DaysToMonthBeginning(berlin, now, 0))

	now = time.Date(2023, 3, 27, 0, 30, 0, 0, berlin)
	assert.Equal(t, 0, DaysToWeekBeginning(berlin, now, 0))
	assert.Equal(t, 7, DaysToWeekBeginning(berlin, now, 1))
}

func TestToday_IsLocalMidnight(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	now := time.Date(2023, 11, 5, 3, 0, 0, 0, time.UTC) // 23:00 Nov 4th in New York

	today := Today(ny, now)
	assert.Equal(t, time.Date(2023, 11, 4, 0, 0, 0, 0, ny), today)
	assert.True(t, today.Equal(time.Date(2023, 11, 4, 4, 0, 0, 0, time.UTC)))

	// The DST day (Nov 5th) is 25 hours long, AddDays still lands on midnight.
	assert.Equal(t, time.Date(2023, 11, 6, 0, 0, 0, 0, ny), AddDays(today, 2))
}

func TestLoadLocation_Invalid(t *testing.T) {
	for _, name := range []string{"", "Local", "Mars/Olympus_Mons", "Europe/Berlinn"} {
		_, err := LoadLocation(name)
		assert.True(t, errors.Is(err, ErrInvalidTimezone), "expected ErrInvalidTimezone for %q, got %v", name, err)
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("month")
	require.NoError(t, err)
	assert.Equal(t, Month, p)

	_, err = ParsePeriod("quarter")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
