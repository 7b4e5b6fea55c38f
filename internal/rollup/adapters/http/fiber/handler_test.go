package fiber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mastodon-analytics-service/internal/rollup/core/domain"
	"mastodon-analytics-service/internal/rollup/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type fakeRollupUseCase struct {
	ExecuteFunc func(ctx context.Context, in usecase.RunInput) (usecase.RunReport, error)
	LastInput   usecase.RunInput
	Called      bool
}

func (f *fakeRollupUseCase) Execute(ctx context.Context, in usecase.RunInput) (usecase.RunReport, error) {
	f.Called = true
	f.LastInput = in
	if f.ExecuteFunc != nil {
		return f.ExecuteFunc(ctx, in)
	}
	return usecase.RunReport{Mode: in.Mode}, nil
}

// helper: create fiber app and routes
func setupTestApp(uc RollupUseCase) *fiber.App {
	app := fiber.New()
	h := NewRollupHandler(uc)

	app.Post("/admin/rollups", h.RunRollup)

	return app
}

// helper: send request
func doRequest(t *testing.T, app *fiber.App, body string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/admin/rollups", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()

	return resp, respBody
}

func TestRunRollup_DefaultsToUpsert(t *testing.T) {
	fakeUC := &fakeRollupUseCase{}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, "")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}
	if fakeUC.LastInput.Mode != domain.Upsert {
		t.Fatalf("expected upsert mode, got %s", fakeUC.LastInput.Mode)
	}
	if !fakeUC.LastInput.From.IsZero() {
		t.Fatalf("expected zero from, got %v", fakeUC.LastInput.From)
	}
}

func TestRunRollup_Report(t *testing.T) {
	fakeUC := &fakeRollupUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.RunInput) (usecase.RunReport, error) {
			return usecase.RunReport{
				RunID:             "run-1",
				Mode:              in.Mode,
				AccountsProcessed: 2,
				AccountsFailed:    1,
				BucketsWritten:    30,
				Failures:          []usecase.AccountFailure{{AccountID: "acc-3", Err: errors.New("timeout")}},
			}, nil
		},
	}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, `{"mode":"insert","from":"2023-05-01","metrics":["followers"]}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}

	want := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	if !fakeUC.LastInput.From.Equal(want) {
		t.Fatalf("expected from %v, got %v", want, fakeUC.LastInput.From)
	}
	if len(fakeUC.LastInput.Metrics) != 1 || fakeUC.LastInput.Metrics[0] != "followers" {
		t.Fatalf("unexpected metrics: %v", fakeUC.LastInput.Metrics)
	}

	var got RunRollupResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if got.Mode != "insert" || got.BucketsWritten != 30 || got.AccountsFailed != 1 {
		t.Fatalf("unexpected response: %+v", got)
	}
	if len(got.Failures) != 1 || got.Failures[0].AccountID != "acc-3" || got.Failures[0].Error != "timeout" {
		t.Fatalf("unexpected failures: %+v", got.Failures)
	}
}

func TestRunRollup_InvalidJSON(t *testing.T) {
	fakeUC := &fakeRollupUseCase{}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, `{"mode":`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}
	if fakeUC.Called {
		t.Fatalf("use case must not be called for invalid json")
	}
}

func TestRunRollup_InvalidDate(t *testing.T) {
	fakeUC := &fakeRollupUseCase{}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, `{"from":"01/05/2023"}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}
}

func TestRunRollup_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidWriteMode, http.StatusBadRequest},
		{usecase.ErrFutureStart, http.StatusBadRequest},
		{usecase.ErrInvalidRollup, http.StatusBadRequest},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		fakeUC := &fakeRollupUseCase{
			ExecuteFunc: func(ctx context.Context, in usecase.RunInput) (usecase.RunReport, error) {
				return usecase.RunReport{}, tt.err
			},
		}
		app := setupTestApp(fakeUC)

		resp, body := doRequest(t, app, `{"mode":"upsert"}`)
		if resp.StatusCode != tt.want {
			t.Fatalf("%v: expected status %d, got %d (body: %s)", tt.err, tt.want, resp.StatusCode, string(body))
		}
	}
}
