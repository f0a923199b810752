package predictionService

import (
	"context"
	"errors"
	"time"

	"HotelGolang/internal/api/prediction"
	contextPkg "HotelGolang/pkg/context"
	"HotelGolang/pkg/forecast"

	"github.com/sirupsen/logrus"
)

func (s *predictionService) PredictPrice(ctx context.Context, req prediction.ForecastRequest) (*prediction.PriceForecastResponse, error) {
	start, end, err := s.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	snap, err := s.LoadSnapshot(ctx, req.RoomTypes, start, end)
	if err != nil {
		return nil, err
	}

	predictions, err := s.engine.PriceRange(snap, req.RoomTypes, start, end)
	if err != nil {
		return nil, s.mapForecastError(ctx, err, "price")
	}

	return &prediction.PriceForecastResponse{
		ModelVersion: s.engine.ModelVersion(),
		Predictions:  predictions,
	}, nil
}

func (s *predictionService) PredictAvailability(ctx context.Context, req prediction.ForecastRequest) (*prediction.AvailabilityForecastResponse, error) {
	start, end, err := s.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	snap, err := s.LoadSnapshot(ctx, req.RoomTypes, start, end)
	if err != nil {
		return nil, err
	}

	forecasts, err := s.engine.AvailabilityRange(snap, req.RoomTypes, start, end)
	if err != nil {
		return nil, s.mapForecastError(ctx, err, "availability")
	}

	return &prediction.AvailabilityForecastResponse{Forecasts: forecasts}, nil
}

func (s *predictionService) PredictDemand(ctx context.Context, req prediction.ForecastRequest) (*prediction.DemandForecastResponse, error) {
	start, end, err := s.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	snap, err := s.LoadSnapshot(ctx, req.RoomTypes, start, end)
	if err != nil {
		return nil, err
	}

	forecasts, err := s.engine.DemandRange(snap, req.RoomTypes, start, end)
	if err != nil {
		return nil, s.mapForecastError(ctx, err, "demand")
	}

	return &prediction.DemandForecastResponse{Forecasts: forecasts}, nil
}

func (s *predictionService) AnalyzeTrend(ctx context.Context, req prediction.TrendRequest) (*forecast.TrendAnalysis, error) {
	start, end, err := s.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	roomTypes := []string{req.RoomType}
	snap, err := s.LoadSnapshot(ctx, roomTypes, start, end)
	if err != nil {
		return nil, err
	}

	predictions, err := s.engine.PriceRange(snap, roomTypes, start, end)
	if err != nil {
		return nil, s.mapForecastError(ctx, err, "trend")
	}

	analysis, err := forecast.AnalyzeTrend(predictions, snap.Reference)
	if err != nil {
		return nil, s.mapForecastError(ctx, err, "trend")
	}

	return &analysis, nil
}

func (s *predictionService) LoadSnapshot(ctx context.Context, roomTypes []string, start, end time.Time) (forecast.Snapshot, error) {
	requestID := contextPkg.GetRequestID(ctx)

	snap := forecast.Snapshot{
		Reference: s.utils.Now(),
		Metrics:   make(map[string]forecast.RoomMetrics, len(roomTypes)),
		Events:    make(map[string][]string),
	}

	repo, err := s.predictionRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return forecast.Snapshot{}, err
	}

	metrics, err := repo.Metrics.GetRoomMetrics(ctx, roomTypes)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"room_types": roomTypes,
			"error":      err.Error(),
		}).Error("Failed to load room metrics")
		return forecast.Snapshot{}, prediction.ErrLoadMetrics
	}
	for _, m := range metrics {
		snap.Metrics[m.RoomType] = m
	}

	events, err := repo.Events.GetLocalEvents(ctx, start, end)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load local events")
		return forecast.Snapshot{}, prediction.ErrLoadEvents
	}
	for _, e := range events {
		key := forecast.DateKey(e.EventDate)
		snap.Events[key] = append(snap.Events[key], e.Name)
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"room_types":   roomTypes,
		"metrics_rows": len(metrics),
		"event_rows":   len(events),
	}).Debug("Forecast snapshot loaded")

	return snap, nil
}

func (s *predictionService) parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	loc := s.utils.Now().Location()

	start, err := time.ParseInLocation(prediction.DateLayout, startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, prediction.ErrInvalidDate
	}
	end, err := time.ParseInLocation(prediction.DateLayout, endDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, prediction.ErrInvalidDate
	}

	if _, err := forecast.Days(start, end); err != nil {
		return time.Time{}, time.Time{}, prediction.ErrInvalidDateRange
	}

	return start, end, nil
}

func (s *predictionService) mapForecastError(ctx context.Context, err error, model string) error {
	fields := logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"model":      model,
		"error":      err.Error(),
	}

	switch {
	case forecast.IsNoData(err):
		s.log.WithFields(fields).Warn("Forecast has no baseline data")
		return prediction.ErrNoData
	case errors.Is(err, forecast.ErrInvalidRange):
		s.log.WithFields(fields).Warn("Invalid forecast range")
		return prediction.ErrInvalidDateRange
	default:
		s.log.WithFields(fields).Error("Forecast failed")
		return err
	}
}
