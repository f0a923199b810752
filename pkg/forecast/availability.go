package forecast

import (
	"fmt"
	"math"
	"time"
)

const (
	defaultOccupancy        = 0.7
	availabilityConfidence  = 0.8
	eventOccupancyIncrement = 0.1
)

type AvailabilityInput struct {
	RoomType                string
	TargetDate              time.Time
	Season                  Season
	TotalRooms              int
	HistoricalOccupancyRate float64
	LocalEventsCount        int
}

func (e *Engine) PredictAvailability(in AvailabilityInput) (AvailabilityForecast, error) {
	if in.TotalRooms <= 0 {
		return AvailabilityForecast{}, fmt.Errorf("%w: %s", ErrNoInventory, in.RoomType)
	}

	season := in.Season
	if season == "" {
		season = SeasonOf(in.TargetDate)
	}

	var factors []Factor

	baseOccupancy := clamp(in.HistoricalOccupancyRate, 0, 1)
	if baseOccupancy > 0 {
		factors = append(factors, Factor{Name: "Historical occupancy", Impact: baseOccupancy, Description: "Baseline from booking history"})
	} else {
		baseOccupancy = defaultOccupancy
		factors = append(factors, Factor{Name: "Default occupancy", Impact: baseOccupancy, Description: "No booking history, using default baseline"})
	}

	seasonal := OccupancySeasonalMultiplier(season)
	if seasonal != 1.0 {
		factors = append(factors, Factor{
			Name:        "Seasonal adjustment",
			Impact:      seasonal - 1.0,
			Description: fmt.Sprintf("%s season occupancy multiplier %.2f", season, seasonal),
		})
	}

	eventAdjustment := 1.0
	if in.LocalEventsCount > 0 {
		eventAdjustment += eventOccupancyIncrement * float64(in.LocalEventsCount)
		factors = append(factors, Factor{
			Name:        "Local events",
			Impact:      eventAdjustment - 1.0,
			Description: fmt.Sprintf("%d local events on this date", in.LocalEventsCount),
		})
	}

	occupancy := clamp(baseOccupancy*seasonal*eventAdjustment, 0, 1)

	available := int(math.Floor(float64(in.TotalRooms) * (1 - occupancy)))
	if available < 0 {
		available = 0
	}
	if available > in.TotalRooms {
		available = in.TotalRooms
	}

	return AvailabilityForecast{
		RoomType:                in.RoomType,
		Date:                    dateOnly(in.TargetDate),
		TotalRooms:              in.TotalRooms,
		PredictedAvailableRooms: available,
		PredictedOccupancyRate:  occupancy,
		Confidence:              availabilityConfidence,
		Factors:                 factors,
	}, nil
}

func (e *Engine) AvailabilityInputFor(snap Snapshot, roomType string, date time.Time) AvailabilityInput {
	metrics := snap.MetricsFor(roomType)
	return AvailabilityInput{
		RoomType:                roomType,
		TargetDate:              date,
		Season:                  SeasonOf(date),
		TotalRooms:              metrics.TotalRooms,
		HistoricalOccupancyRate: metrics.OccupancyRate,
		LocalEventsCount:        len(snap.EventsOn(date)),
	}
}
