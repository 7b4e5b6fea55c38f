package fiber

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/rollup/core/domain"
	"mastodon-analytics-service/internal/rollup/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type RollupUseCase interface {
	Execute(ctx context.Context, in usecase.RunInput) (usecase.RunReport, error)
}

type RollupHandler struct {
	rollupUC RollupUseCase
}

func NewRollupHandler(rollupUC RollupUseCase) *RollupHandler {
	return &RollupHandler{rollupUC: rollupUC}
}

// RunRollup godoc
// @Summary Run a daily bucket rollup
// @Description Rebuilds daily buckets for every active account. Defaults to upsert so reruns stay idempotent.
// @Tags Rollups
// @Accept json
// @Produce json
// @Param request body RunRollupRequest true "Rollup payload"
// @Success 200 {object} RunRollupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/rollups [post]
func (h *RollupHandler) RunRollup(c *fiber.Ctx) error {
	var req RunRollupRequest

	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid_json",
			})
		}
	}

	input := usecase.RunInput{
		Mode:       domain.Upsert,
		AllHistory: req.AllHistory,
	}
	if req.Mode != "" {
		input.Mode = domain.WriteMode(req.Mode)
	}
	if req.From != "" {
		from, err := time.Parse(time.DateOnly, req.From)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_rollup",
				Message: "from must be a YYYY-MM-DD date",
			})
		}
		input.From = from
	}
	for _, m := range req.Metrics {
		input.Metrics = append(input.Metrics, counter.Metric(m))
	}

	res, err := h.rollupUC.Execute(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidWriteMode),
			errors.Is(err, usecase.ErrInvalidRollup),
			errors.Is(err, usecase.ErrFutureStart):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_rollup",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	resp := RunRollupResponse{
		RunID:             res.RunID,
		Mode:              string(res.Mode),
		AccountsProcessed: res.AccountsProcessed,
		AccountsFailed:    res.AccountsFailed,
		BucketsWritten:    res.BucketsWritten,
	}
	for _, f := range res.Failures {
		resp.Failures = append(resp.Failures, AccountFailureResponse{
			AccountID: f.AccountID,
			Error:     f.Err.Error(),
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}
