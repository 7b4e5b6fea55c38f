package domain

import (
	"encoding/json"
	"math"
)

// KPIResult is a period-over-period reading of one metric. Nil fields mean the
// bucket history had no data for them; they are omitted rather than sent as 0.
type KPIResult struct {
	CurrentPeriod         *int64   `json:"currentPeriod,omitempty"`
	PreviousPeriod        *int64   `json:"previousPeriod,omitempty"`
	CurrentPeriodProgress *float64 `json:"currentPeriodProgress,omitempty"`
	IsLastPeriod          *bool    `json:"isLastPeriod,omitempty"`
	Trend                 *Trend   `json:"trend,omitempty"`
}

// KPIInputs are the three bucket lookups plus the calendar position a KPI is
// computed from. A nil value is a lookup that found nothing.
type KPIInputs struct {
	AtLastPeriodStart *int64
	AtThisPeriodStart *int64
	AtToday           *int64

	DaysElapsed       int
	IdealPeriodLength int
	IsLastPeriod      bool
}

// ComputeKPI derives the current and previous period deltas, the progress of the
// current period and its projected trend.
func ComputeKPI(in KPIInputs) KPIResult {
	var res KPIResult

	if in.AtToday != nil && in.AtThisPeriodStart != nil {
		v := max(0, *in.AtToday-*in.AtThisPeriodStart)
		res.CurrentPeriod = &v
	}
	if in.AtThisPeriodStart != nil && in.AtLastPeriodStart != nil {
		v := max(0, *in.AtThisPeriodStart-*in.AtLastPeriodStart)
		res.PreviousPeriod = &v
	}

	progress := 1.0
	if in.IdealPeriodLength > 0 {
		progress = math.Min(1, float64(in.DaysElapsed)/float64(in.IdealPeriodLength))
	}
	progress = math.Max(0, progress)
	res.CurrentPeriodProgress = &progress

	isLast := in.IsLastPeriod
	res.IsLastPeriod = &isLast

	res.Trend = ComputeTrend(res)
	return res
}

// Trend is the projected relative change of the current period against the
// previous one. Infinite marks growth from a zero baseline.
type Trend struct {
	Value    float64
	Infinite bool
}

const infiniteTrend = "infinite"

// MarshalJSON writes a number, or the string "infinite" for a zero baseline.
func (t Trend) MarshalJSON() ([]byte, error) {
	if t.Infinite {
		return json.Marshal(infiniteTrend)
	}
	return json.Marshal(t.Value)
}

func (t *Trend) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil && s == infiniteTrend {
		*t = Trend{Infinite: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = Trend{Value: v}
	return nil
}

// ComputeTrend returns nil unless current, previous and progress are all known.
func ComputeTrend(r KPIResult) *Trend {
	if r.CurrentPeriod == nil || r.PreviousPeriod == nil || r.CurrentPeriodProgress == nil {
		return nil
	}

	current := float64(*r.CurrentPeriod)
	previous := float64(*r.PreviousPeriod)
	progress := *r.CurrentPeriodProgress

	if previous == 0 {
		if current > 0 {
			return &Trend{Infinite: true}
		}
		return &Trend{}
	}

	projected := current
	if progress > 0 {
		projected = current / progress
	}
	return &Trend{Value: (projected - previous) / previous}
}
