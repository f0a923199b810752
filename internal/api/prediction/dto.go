package prediction

import "HotelGolang/pkg/forecast"

const DateLayout = "2006-01-02"

type ForecastRequest struct {
	RoomTypes []string `json:"roomTypes" validate:"required,min=1,max=5,dive,required,max=32"`
	StartDate string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type TrendRequest struct {
	RoomType  string `json:"roomType" validate:"required,max=32"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type PriceForecastResponse struct {
	ModelVersion string                     `json:"modelVersion"`
	Predictions  []forecast.PricePrediction `json:"predictions"`
}

type AvailabilityForecastResponse struct {
	Forecasts []forecast.AvailabilityForecast `json:"forecasts"`
}

type DemandForecastResponse struct {
	Forecasts []forecast.DemandForecast `json:"forecasts"`
}
