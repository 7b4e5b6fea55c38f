package timeframe

import "time"

// Token is a symbolic dashboard timeframe.
type Token string

const (
	ThisWeek   Token = "thisweek"
	ThisMonth  Token = "thismonth"
	ThisYear   Token = "thisyear"
	LastWeek   Token = "lastweek"
	LastMonth  Token = "lastmonth"
	LastYear   Token = "lastyear"
	Last7Days  Token = "last7days"
	Last30Days Token = "last30days"
)

// DefaultToken is what unrecognised tokens resolve to. Older dashboard clients
// send free-form values and rely on this fallback.
const DefaultToken = Last30Days

// ParseToken reports whether s is a known token. Unknown values map to
// DefaultToken with ok == false.
func ParseToken(s string) (tok Token, ok bool) {
	switch t := Token(s); t {
	case ThisWeek, ThisMonth, ThisYear, LastWeek, LastMonth, LastYear, Last7Days, Last30Days:
		return t, true
	default:
		return DefaultToken, false
	}
}

// Range is a half-open interval [DateFrom, DateTo) of local midnights.
type Range struct {
	DateFrom  time.Time
	DateTo    time.Time
	Timeframe Token
}

// ResolveAt resolves token for the calendar of loc at the instant now.
func ResolveAt(loc *time.Location, now time.Time, token string) Range {
	tok, _ := ParseToken(token)

	today := Today(loc, now)
	tomorrow := AddDays(today, 1)

	r := Range{Timeframe: tok}
	switch tok {
	case ThisWeek:
		r.DateFrom, r.DateTo = PeriodStart(Week, loc, now, 0), tomorrow
	case ThisMonth:
		r.DateFrom, r.DateTo = PeriodStart(Month, loc, now, 0), tomorrow
	case ThisYear:
		r.DateFrom, r.DateTo = PeriodStart(Year, loc, now, 0), tomorrow
	case LastWeek:
		r.DateFrom, r.DateTo = PeriodStart(Week, loc, now, 1), PeriodStart(Week, loc, now, 0)
	case LastMonth:
		r.DateFrom, r.DateTo = PeriodStart(Month, loc, now, 1), PeriodStart(Month, loc, now, 0)
	case LastYear:
		r.DateFrom, r.DateTo = PeriodStart(Year, loc, now, 1), PeriodStart(Year, loc, now, 0)
	case Last7Days:
		r.DateFrom, r.DateTo = AddDays(today, -7), today
	default:
		r.DateFrom, r.DateTo = AddDays(today, -30), today
	}
	return r
}

// Resolver resolves timeframes against a clock. The zero value is not usable;
// build one with NewResolver.
type Resolver struct {
	now func() time.Time
}

type Option func(*Resolver)

// WithClock replaces time.Now, mostly for tests and backfills.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Now() time.Time {
	return r.now()
}

// Resolve resolves token in the named IANA timezone. An invalid timezone is an
// error; an unknown token is not (see DefaultToken).
func (r *Resolver) Resolve(timezone, token string) (Range, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return Range{}, err
	}
	return ResolveAt(loc, r.now(), token), nil
}
