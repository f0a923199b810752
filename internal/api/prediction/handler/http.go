package predictionHandler

import (
	predictionService "HotelGolang/internal/api/prediction/service"
	"HotelGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type PredictionHandler struct {
	log               *logrus.Logger
	validator         *validator.Validate
	middleware        middleware.Middleware
	predictionService predictionService.IPredictionService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ps predictionService.IPredictionService,
) *PredictionHandler {
	return &PredictionHandler{
		log:               log,
		validator:         validate,
		middleware:        middleware,
		predictionService: ps,
	}
}

func (h *PredictionHandler) Start(srv fiber.Router) {
	predictions := srv.Group("/predictions", h.middleware.NewRateLimiter)

	predictions.Post("/price", h.PredictPrice)
	predictions.Post("/availability", h.PredictAvailability)
	predictions.Post("/demand", h.PredictDemand)
	predictions.Post("/trends", h.AnalyzeTrend)
}
