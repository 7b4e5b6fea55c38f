// Package counter defines the engagement counters the analytics engine rolls up
// and serves, together with the rollup strategy each of them needs.
package counter

import (
	"errors"
	"fmt"
)

var ErrUnknownMetric = errors.New("unknown metric")

type Metric string

const (
	Followers  Metric = "followers"
	Following  Metric = "following"
	Statuses   Metric = "statuses"
	Replies    Metric = "replies"
	Boosts     Metric = "boosts"
	Favourites Metric = "favourites"
)

// Strategy tells the rollup how repeated samples of a metric collapse into one
// value per day.
type Strategy int

const (
	// PointInTime counters have one authoritative value per account at any instant
	// (follower count). The day's value is the highest sample of that day.
	PointInTime Strategy = iota
	// PerItem counters are attached to a single status and re-sampled over its
	// lifetime. Samples are reduced per item first, then summed for the account.
	PerItem
)

func (s Strategy) String() string {
	switch s {
	case PointInTime:
		return "point_in_time"
	case PerItem:
		return "per_item"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

type definition struct {
	strategy Strategy
	label    string
}

var catalog = map[Metric]definition{
	Followers:  {strategy: PointInTime, label: "Followers"},
	Following:  {strategy: PointInTime, label: "Following"},
	Statuses:   {strategy: PointInTime, label: "Posts"},
	Replies:    {strategy: PerItem, label: "Replies"},
	Boosts:     {strategy: PerItem, label: "Boosts"},
	Favourites: {strategy: PerItem, label: "Favourites"},
}

// All returns every known metric in a stable order.
func All() []Metric {
	return []Metric{Followers, Following, Statuses, Replies, Boosts, Favourites}
}

// Parse validates a metric name coming from a request or config.
func Parse(s string) (Metric, error) {
	m := Metric(s)
	if _, ok := catalog[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
	return m, nil
}

func (m Metric) Strategy() Strategy {
	return catalog[m].strategy
}

// Label is the human readable column name used in exports.
func (m Metric) Label() string {
	if d, ok := catalog[m]; ok {
		return d.label
	}
	return string(m)
}
