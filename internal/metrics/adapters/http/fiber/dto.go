package fiber

import "mastodon-analytics-service/internal/metrics/core/domain"

type TimeframeResponse struct {
	DateFrom  string `json:"dateFrom" example:"2023-05-01T00:00:00+02:00"`
	DateTo    string `json:"dateTo" example:"2023-05-16T00:00:00+02:00"`
	Timeframe string `json:"timeframe" example:"thismonth"`
}

// KPIResponse mirrors domain.KPIResult; absent fields mean "no data".
// @Description trend is a number, or the string "infinite" when the previous period was zero.
type KPIResponse struct {
	Metric string `json:"metric" example:"followers"`
	Period string `json:"period" example:"month"`
	domain.KPIResult
}

type ChartPointResponse struct {
	Date  string `json:"date" example:"2023-05-15"`
	Value int64  `json:"value" example:"10"`
}

type ChartResponse struct {
	Metric    string               `json:"metric" example:"boosts"`
	Label     string               `json:"label" example:"Boosts"`
	Timeframe TimeframeResponse    `json:"timeframe"`
	Points    []ChartPointResponse `json:"points"`
}

type TopContentItemResponse struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"createdAt"`
	Score      int64  `json:"score"`
	Replies    int64  `json:"replies"`
	Boosts     int64  `json:"boosts"`
	Favourites int64  `json:"favourites"`
	Content    string `json:"content"`
	URL        string `json:"url"`
}

type TopContentResponse struct {
	Mode      string                   `json:"mode" example:"top"`
	Timeframe *TimeframeResponse       `json:"timeframe,omitempty"`
	Items     []TopContentItemResponse `json:"items"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"invalid metric: \"likes\""`
}
