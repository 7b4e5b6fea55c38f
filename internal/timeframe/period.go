// Package timeframe turns symbolic dashboard timeframes ("thismonth", "last7days")
// and period boundaries (week, month, year) into absolute instants that respect an
// account's local calendar.
//
// Every day boundary is a local midnight expressed as an absolute time.Time in the
// account's location. Day counts are calendar based: a day that is 23 or 25 hours
// long because of a DST switch still counts as one day.
package timeframe

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrInvalidPeriod   = errors.New("invalid period")
)

// Period is a calendar cycle used for period-over-period comparisons.
type Period int

const (
	Week Period = iota
	Month
	Year
)

func (p Period) String() string {
	switch p {
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	default:
		return fmt.Sprintf("period(%d)", int(p))
	}
}

func ParsePeriod(s string) (Period, error) {
	switch s {
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	case "year":
		return Year, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}

// LoadLocation resolves an IANA timezone name. Unlike time.LoadLocation it refuses
// the empty string and "Local", both of which would silently fall back to a
// server-side zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, name, err)
	}
	return loc, nil
}

// Today returns the local midnight of now in loc.
func Today(loc *time.Location, now time.Time) time.Time {
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
}

// AddDays moves a local midnight by n calendar days.
func AddDays(day time.Time, n int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+n, 0, 0, 0, 0, day.Location())
}

// PeriodStart returns the local midnight on which the period `modifier` cycles
// before the current one begins. modifier 0 is the running cycle, 1 the previous
// one and -1 the next one. Weeks start on Monday.
func PeriodStart(p Period, loc *time.Location, now time.Time, modifier int) time.Time {
	today := Today(loc, now)
	y, m, d := today.Date()

	switch p {
	case Week:
		sinceMonday := (int(today.Weekday()) + 6) % 7
		return time.Date(y, m, d-sinceMonday-7*modifier, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, m-time.Month(modifier), 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y-modifier, time.January, 1, 0, 0, 0, 0, loc)
	}
}

// DaysToPeriodBeginning counts the calendar days from today back to
// PeriodStart(p, loc, now, modifier). The result is negative for future cycles.
func DaysToPeriodBeginning(p Period, loc *time.Location, now time.Time, modifier int) int {
	return DaysBetween(PeriodStart(p, loc, now, modifier), Today(loc, now))
}

func DaysToWeekBeginning(loc *time.Location, now time.Time, modifier int) int {
	return DaysToPeriodBeginning(Week, loc, now, modifier)
}

func DaysToMonthBeginning(loc *time.Location, now time.Time, modifier int) int {
	return DaysToPeriodBeginning(Month, loc, now, modifier)
}

func DaysToYearBeginning(loc *time.Location, now time.Time, modifier int) int {
	return DaysToPeriodBeginning(Year, loc, now, modifier)
}

// DaysBetween counts calendar days from one local date to another, ignoring the
// wall-clock length of the days in between.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
