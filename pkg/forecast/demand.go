package forecast

import (
	"fmt"
	"math"
	"time"
)

const (
	demandConfidence  = 0.75
	eventDemandFactor = 1.2
	demandTrendCutoff = 0.15
)

type DemandInput struct {
	RoomType                string
	TargetDate              time.Time
	Season                  Season
	TotalRooms              int
	HistoricalOccupancyRate float64
	LocalEvents             []string
}

func (e *Engine) PredictDemand(in DemandInput) (DemandForecast, error) {
	if in.TotalRooms <= 0 {
		return DemandForecast{}, fmt.Errorf("%w: %s", ErrNoInventory, in.RoomType)
	}

	season := in.Season
	if season == "" {
		season = SeasonOf(in.TargetDate)
	}

	occupancy := clamp(in.HistoricalOccupancyRate, 0, 1)
	historical := int(math.Round(float64(in.TotalRooms) * occupancy))

	var factors []Factor

	seasonal := OccupancySeasonalMultiplier(season)
	if seasonal != 1.0 {
		factors = append(factors, Factor{
			Name:        "Seasonal demand",
			Impact:      seasonal - 1.0,
			Description: fmt.Sprintf("%s season demand multiplier %.2f", season, seasonal),
		})
	}

	eventFactor := 1.0
	if len(in.LocalEvents) > 0 {
		eventFactor = eventDemandFactor
		factors = append(factors, Factor{
			Name:        "Local events",
			Impact:      eventDemandFactor - 1.0,
			Description: fmt.Sprintf("%d local events on this date", len(in.LocalEvents)),
		})
	}

	predicted := int(math.Round(float64(historical) * seasonal * eventFactor))
	if predicted < 0 {
		predicted = 0
	}

	// signed so the direction survives
	variation := 0.0
	if historical > 0 {
		variation = float64(predicted-historical) / float64(historical)
	}

	trend := TrendStable
	switch {
	case variation > demandTrendCutoff:
		trend = TrendIncreasing
	case variation < -demandTrendCutoff:
		trend = TrendDecreasing
	}

	return DemandForecast{
		RoomType:          in.RoomType,
		Date:              dateOnly(in.TargetDate),
		PredictedDemand:   predicted,
		HistoricalAverage: historical,
		DemandVariation:   variation,
		Trend:             trend,
		Confidence:        demandConfidence,
		Factors:           factors,
	}, nil
}

func (e *Engine) DemandInputFor(snap Snapshot, roomType string, date time.Time) DemandInput {
	metrics := snap.MetricsFor(roomType)
	return DemandInput{
		RoomType:                roomType,
		TargetDate:              date,
		Season:                  SeasonOf(date),
		TotalRooms:              metrics.TotalRooms,
		HistoricalOccupancyRate: metrics.OccupancyRate,
		LocalEvents:             snap.EventsOn(date),
	}
}
