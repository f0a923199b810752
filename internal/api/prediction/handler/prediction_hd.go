package predictionHandler

import (
	"context"
	"time"

	"HotelGolang/internal/api/prediction"
	contextPkg "HotelGolang/pkg/context"
	"HotelGolang/pkg/handlerUtil"
	"HotelGolang/pkg/log"

	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 10 * time.Second

func (h *PredictionHandler) PredictPrice(ctx *fiber.Ctx) error {
	return h.forecast(ctx, "predict_price", func(c context.Context, req prediction.ForecastRequest) (interface{}, error) {
		return h.predictionService.PredictPrice(c, req)
	})
}

func (h *PredictionHandler) PredictAvailability(ctx *fiber.Ctx) error {
	return h.forecast(ctx, "predict_availability", func(c context.Context, req prediction.ForecastRequest) (interface{}, error) {
		return h.predictionService.PredictAvailability(c, req)
	})
}

func (h *PredictionHandler) PredictDemand(ctx *fiber.Ctx) error {
	return h.forecast(ctx, "predict_demand", func(c context.Context, req prediction.ForecastRequest) (interface{}, error) {
		return h.predictionService.PredictDemand(c, req)
	})
}

func (h *PredictionHandler) forecast(
	ctx *fiber.Ctx,
	operation string,
	run func(c context.Context, req prediction.ForecastRequest) (interface{}, error),
) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"operation":  operation,
	}).Debug("Processing forecast request")

	var req prediction.ForecastRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := run(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), operation)
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *PredictionHandler) AnalyzeTrend(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing trend analysis request")

	var req prediction.TrendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	analysis, err := h.predictionService.AnalyzeTrend(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "analyze_trend")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analysis)
	}
}
