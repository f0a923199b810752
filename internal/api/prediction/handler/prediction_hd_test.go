package predictionHandler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HotelGolang/internal/api/prediction"
	"HotelGolang/internal/middleware"
	"HotelGolang/pkg/forecast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fakePredictionService struct {
	err     error
	lastReq prediction.ForecastRequest
}

func (f *fakePredictionService) PredictPrice(_ context.Context, req prediction.ForecastRequest) (*prediction.PriceForecastResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &prediction.PriceForecastResponse{
		ModelVersion: forecast.DefaultModelVersion,
		Predictions:  []forecast.PricePrediction{{RoomType: req.RoomTypes[0], PredictedPrice: 120}},
	}, nil
}

func (f *fakePredictionService) PredictAvailability(_ context.Context, req prediction.ForecastRequest) (*prediction.AvailabilityForecastResponse, error) {
	f.lastReq = req
	return &prediction.AvailabilityForecastResponse{Forecasts: []forecast.AvailabilityForecast{}}, f.err
}

func (f *fakePredictionService) PredictDemand(_ context.Context, req prediction.ForecastRequest) (*prediction.DemandForecastResponse, error) {
	f.lastReq = req
	return &prediction.DemandForecastResponse{Forecasts: []forecast.DemandForecast{}}, f.err
}

func (f *fakePredictionService) AnalyzeTrend(_ context.Context, req prediction.TrendRequest) (*forecast.TrendAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &forecast.TrendAnalysis{RoomType: req.RoomType, Direction: forecast.TrendStable}, nil
}

func (f *fakePredictionService) LoadSnapshot(_ context.Context, _ []string, _, _ time.Time) (forecast.Snapshot, error) {
	return forecast.Snapshot{}, nil
}

func newTestApp(t *testing.T) (*fiber.App, *fakePredictionService) {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	mw := middleware.New(log)
	svc := &fakePredictionService{}

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	New(log, validator.New(), mw, svc).Start(app.Group("/api/v1"))

	return app, svc
}

func post(t *testing.T, app *fiber.App, path, body string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestPredictPrice(t *testing.T) {
	app, svc := newTestApp(t)

	resp, raw := post(t, app, "/api/v1/predictions/price",
		`{"roomTypes":["Deluxe"],"startDate":"2026-10-24","endDate":"2026-10-25"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body prediction.PriceForecastResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, forecast.DefaultModelVersion, body.ModelVersion)
	require.Len(t, body.Predictions, 1)
	assert.Equal(t, "Deluxe", body.Predictions[0].RoomType)
	assert.Equal(t, "2026-10-24", svc.lastReq.StartDate)
}

func TestForecastEndpoints_Validation(t *testing.T) {
	app, _ := newTestApp(t)

	bodies := []string{
		`{"roomTypes":[],"startDate":"2026-10-24","endDate":"2026-10-25"}`,
		`{"roomTypes":["Deluxe"],"startDate":"24-10-2026","endDate":"2026-10-25"}`,
		`{"roomTypes":["Deluxe"],"startDate":"2026-10-24"}`,
		`{"roomTypes":`,
	}

	for _, path := range []string{"/api/v1/predictions/price", "/api/v1/predictions/availability", "/api/v1/predictions/demand"} {
		for _, body := range bodies {
			resp, _ := post(t, app, path, body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "%s %s", path, body)
		}
	}
}

func TestForecastEndpoints_DomainErrors(t *testing.T) {
	app, svc := newTestApp(t)
	body := `{"roomTypes":["Penthouse"],"startDate":"2026-10-24","endDate":"2026-10-25"}`

	svc.err = prediction.ErrNoData
	resp, _ := post(t, app, "/api/v1/predictions/price", body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	svc.err = prediction.ErrInvalidDateRange
	resp, _ = post(t, app, "/api/v1/predictions/availability", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	svc.err = prediction.ErrLoadMetrics
	resp, _ = post(t, app, "/api/v1/predictions/demand", body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestAnalyzeTrend(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := post(t, app, "/api/v1/predictions/trends",
		`{"roomType":"Suite","startDate":"2026-10-20","endDate":"2026-11-02"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body forecast.TrendAnalysis
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Suite", body.RoomType)

	resp, _ = post(t, app, "/api/v1/predictions/trends", `{"startDate":"2026-10-20","endDate":"2026-11-02"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
