package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrInvalidRankMode = errors.New("invalid rank mode")

const DefaultTopLimit = 5

// ContentItem is a published status with its latest engagement counters.
type ContentItem struct {
	ID         string
	AccountID  string
	CreatedAt  time.Time
	Replies    int64
	Boosts     int64
	Favourites int64
	Content    string
	URL        string
}

type RankMode string

const (
	RankReplies    RankMode = "replies"
	RankBoosts     RankMode = "boosts"
	RankFavourites RankMode = "favourites"
	// RankTop scores by boosts plus replies.
	RankTop RankMode = "top"
)

func ParseRankMode(s string) (RankMode, error) {
	switch m := RankMode(s); m {
	case RankReplies, RankBoosts, RankFavourites, RankTop:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRankMode, s)
	}
}

func (m RankMode) Score(it ContentItem) int64 {
	switch m {
	case RankReplies:
		return it.Replies
	case RankBoosts:
		return it.Boosts
	case RankFavourites:
		return it.Favourites
	case RankTop:
		return it.Boosts + it.Replies
	default:
		return 0
	}
}

type RankedItem struct {
	ContentItem
	Score int64
}

// RankFilter bounds item creation time to [From, To). Nil bounds are open.
type RankFilter struct {
	From *time.Time
	To   *time.Time
}

func (f RankFilter) contains(t time.Time) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.Before(*f.To) {
		return false
	}
	return true
}

// RankTopContent returns the highest scoring items, newest first on ties. Items
// scoring zero or less are dropped. A limit <= 0 means DefaultTopLimit.
func RankTopContent(items []ContentItem, mode RankMode, filter RankFilter, limit int) ([]RankedItem, error) {
	if _, err := ParseRankMode(string(mode)); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	ranked := make([]RankedItem, 0, len(items))
	for _, it := range items {
		if !filter.contains(it.CreatedAt) {
			continue
		}
		score := mode.Score(it)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, RankedItem{ContentItem: it, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
