package predictionService

import (
	"context"
	"time"

	"HotelGolang/internal/api/prediction"
	predictionRepository "HotelGolang/internal/api/prediction/repository"
	"HotelGolang/pkg/forecast"
	"HotelGolang/pkg/utils"

	"github.com/sirupsen/logrus"
)

type IPredictionService interface {
	PredictPrice(ctx context.Context, req prediction.ForecastRequest) (*prediction.PriceForecastResponse, error)
	PredictAvailability(ctx context.Context, req prediction.ForecastRequest) (*prediction.AvailabilityForecastResponse, error)
	PredictDemand(ctx context.Context, req prediction.ForecastRequest) (*prediction.DemandForecastResponse, error)
	AnalyzeTrend(ctx context.Context, req prediction.TrendRequest) (*forecast.TrendAnalysis, error)
	// LoadSnapshot resolves the historical metrics, inventory and events a
	// forecast over [start, end] needs for the given room types.
	LoadSnapshot(ctx context.Context, roomTypes []string, start, end time.Time) (forecast.Snapshot, error)
}

type predictionService struct {
	log            *logrus.Logger
	predictionRepo predictionRepository.Repository
	engine         *forecast.Engine
	utils          utils.IUtils
}

func NewPredictionService(
	log *logrus.Logger,
	predictionRepo predictionRepository.Repository,
	engine *forecast.Engine,
	utils utils.IUtils,
) IPredictionService {
	return &predictionService{
		log:            log,
		predictionRepo: predictionRepo,
		engine:         engine,
		utils:          utils,
	}
}
