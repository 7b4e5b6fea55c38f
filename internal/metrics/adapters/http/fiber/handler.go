package fiber

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"mastodon-analytics-service/internal/metrics/core/domain"
	"mastodon-analytics-service/internal/metrics/core/usecase"
	"mastodon-analytics-service/internal/timeframe"

	"github.com/gofiber/fiber/v2"
)

type TimeframeUseCase interface {
	Execute(ctx context.Context, accountID, token string) (timeframe.Range, error)
}

type KPIUseCase interface {
	Execute(ctx context.Context, in usecase.KPIInput) (*domain.KPIResult, error)
}

type ChartUseCase interface {
	Execute(ctx context.Context, in usecase.ChartInput) (*usecase.ChartSeries, error)
	ExportCSV(ctx context.Context, in usecase.ChartInput, w io.Writer) (*usecase.ChartSeries, error)
}

type TopContentUseCase interface {
	Execute(ctx context.Context, in usecase.TopContentInput) (*usecase.TopContentResult, error)
}

type AnalyticsHandler struct {
	timeframeUC TimeframeUseCase
	kpiUC       KPIUseCase
	chartUC     ChartUseCase
	topUC       TopContentUseCase
}

func NewAnalyticsHandler(timeframeUC TimeframeUseCase, kpiUC KPIUseCase, chartUC ChartUseCase, topUC TopContentUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{
		timeframeUC: timeframeUC,
		kpiUC:       kpiUC,
		chartUC:     chartUC,
		topUC:       topUC,
	}
}

// Register mounts the analytics routes on r.
func (h *AnalyticsHandler) Register(r fiber.Router) {
	r.Get("/accounts/:id/timeframe", h.GetTimeframe)
	r.Get("/accounts/:id/kpi", h.GetKPI)
	r.Get("/accounts/:id/chart", h.GetChart)
	r.Get("/accounts/:id/chart.csv", h.ExportChartCSV)
	r.Get("/accounts/:id/top", h.GetTopContent)
}

// GetTimeframe godoc
// @Summary Resolve a timeframe
// @Description Resolves a timeframe token to absolute dates in the account's timezone. Unknown tokens resolve as last30days.
// @Tags Analytics
// @Produce json
// @Param id path string true "Account ID"
// @Param timeframe query string false "thisweek | thismonth | thisyear | lastweek | lastmonth | lastyear | last7days | last30days"
// @Success 200 {object} TimeframeResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /accounts/{id}/timeframe [get]
func (h *AnalyticsHandler) GetTimeframe(c *fiber.Ctx) error {
	rng, err := h.timeframeUC.Execute(c.UserContext(), c.Params("id"), c.Query("timeframe"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toTimeframeResponse(rng))
}

// GetKPI godoc
// @Summary Period-over-period KPI
// @Description Compares the running week, month or year of a metric with the previous one and projects a trend.
// @Tags Analytics
// @Produce json
// @Param id path string true "Account ID"
// @Param metric query string true "followers | following | statuses | replies | boosts | favourites"
// @Param period query string true "week | month | year"
// @Success 200 {object} KPIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /accounts/{id}/kpi [get]
func (h *AnalyticsHandler) GetKPI(c *fiber.Ctx) error {
	in := usecase.KPIInput{
		AccountID: c.Params("id"),
		Metric:    c.Query("metric"),
		Period:    c.Query("period"),
	}

	res, err := h.kpiUC.Execute(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(KPIResponse{
		Metric:    in.Metric,
		Period:    in.Period,
		KPIResult: *res,
	})
}

// GetChart godoc
// @Summary Daily delta chart
// @Description Per-day increase of a metric over a timeframe.
// @Tags Analytics
// @Produce json
// @Param id path string true "Account ID"
// @Param metric query string true "Metric name"
// @Param timeframe query string false "Timeframe token"
// @Success 200 {object} ChartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /accounts/{id}/chart [get]
func (h *AnalyticsHandler) GetChart(c *fiber.Ctx) error {
	series, err := h.chartUC.Execute(c.UserContext(), chartInput(c))
	if err != nil {
		return writeError(c, err)
	}

	loc := series.Range.DateFrom.Location()
	resp := ChartResponse{
		Metric:    string(series.Metric),
		Label:     series.Metric.Label(),
		Timeframe: toTimeframeResponse(series.Range),
		Points:    make([]ChartPointResponse, 0, len(series.Points)),
	}
	for _, p := range series.Points {
		resp.Points = append(resp.Points, ChartPointResponse{
			Date:  p.Date.In(loc).Format(time.DateOnly),
			Value: p.Value,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// ExportChartCSV godoc
// @Summary Export a chart as CSV
// @Description Semicolon separated, header "Date;<Metric label>".
// @Tags Analytics
// @Produce text/csv
// @Param id path string true "Account ID"
// @Param metric query string true "Metric name"
// @Param timeframe query string false "Timeframe token"
// @Success 200 {string} string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /accounts/{id}/chart.csv [get]
func (h *AnalyticsHandler) ExportChartCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer

	series, err := h.chartUC.ExportCSV(c.UserContext(), chartInput(c), &buf)
	if err != nil {
		return writeError(c, err)
	}

	c.Attachment(fmt.Sprintf("%s-%s.csv", series.Metric, series.Range.Timeframe))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Status(http.StatusOK).Send(buf.Bytes())
}

// GetTopContent godoc
// @Summary Top content
// @Description Ranks the account's statuses by engagement. Without a timeframe the whole history is ranked.
// @Tags Analytics
// @Produce json
// @Param id path string true "Account ID"
// @Param mode query string true "replies | boosts | favourites | top"
// @Param timeframe query string false "Timeframe token"
// @Param limit query int false "Number of items (default 5)"
// @Success 200 {object} TopContentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /accounts/{id}/top [get]
func (h *AnalyticsHandler) GetTopContent(c *fiber.Ctx) error {
	in := usecase.TopContentInput{
		AccountID: c.Params("id"),
		Mode:      c.Query("mode"),
		Timeframe: c.Query("timeframe"),
		Limit:     c.QueryInt("limit", 0),
	}

	res, err := h.topUC.Execute(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}

	resp := TopContentResponse{
		Mode:  string(res.Mode),
		Items: make([]TopContentItemResponse, 0, len(res.Items)),
	}
	if res.Range != nil {
		tr := toTimeframeResponse(*res.Range)
		resp.Timeframe = &tr
	}
	for _, it := range res.Items {
		resp.Items = append(resp.Items, TopContentItemResponse{
			ID:         it.ID,
			CreatedAt:  it.CreatedAt.UTC().Format(time.RFC3339),
			Score:      it.Score,
			Replies:    it.Replies,
			Boosts:     it.Boosts,
			Favourites: it.Favourites,
			Content:    it.Content,
			URL:        it.URL,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}

func chartInput(c *fiber.Ctx) usecase.ChartInput {
	return usecase.ChartInput{
		AccountID: c.Params("id"),
		Metric:    c.Query("metric"),
		Timeframe: c.Query("timeframe"),
	}
}

func toTimeframeResponse(r timeframe.Range) TimeframeResponse {
	return TimeframeResponse{
		DateFrom:  r.DateFrom.Format(time.RFC3339),
		DateTo:    r.DateTo.Format(time.RFC3339),
		Timeframe: string(r.Timeframe),
	}
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuery),
		errors.Is(err, usecase.ErrInvalidMetric),
		errors.Is(err, timeframe.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidRankMode):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrAccountNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "account_not_found",
			Message: err.Error(),
		})
	case errors.Is(err, timeframe.ErrInvalidTimezone):
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   "invalid_timezone",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
