package forecast

import (
	"fmt"
	"strings"
	"time"
)

var basePrices = map[string]float64{
	"standard":     100,
	"deluxe":       150,
	"executive":    200,
	"suite":        250,
	"presidential": 500,
}

const (
	defaultBasePrice = 100.0

	minDemandAdjustment = 0.5
	maxDemandAdjustment = 2.0

	lastMinuteDays   = 7
	earlyBookingDays = 30
	decreasingAfter  = 60
)

type PriceInput struct {
	RoomType               string
	TargetDate             time.Time
	BookingDate            time.Time
	Season                 Season
	IsWeekend              bool
	IsHoliday              bool
	HolidayName            string
	LocalEvents            []string
	HistoricalAveragePrice float64
}

// BasePrice looks the room type up in the rate card. The second value is
// false when the room type is not on the card.
func BasePrice(roomType string) (float64, bool) {
	price, ok := basePrices[strings.ToLower(strings.TrimSpace(roomType))]
	if !ok {
		return defaultBasePrice, false
	}
	return price, true
}

func (e *Engine) PredictPrice(in PriceInput) (PricePrediction, error) {
	base, known := BasePrice(in.RoomType)
	if !known && in.HistoricalAveragePrice <= 0 {
		return PricePrediction{}, fmt.Errorf("%w: %s", ErrNoBaseline, in.RoomType)
	}

	season := in.Season
	if season == "" {
		season = SeasonOf(in.TargetDate)
	}
	seasonal := PriceSeasonalMultiplier(season)

	daysAhead := daysBetween(in.BookingDate, in.TargetDate)
	if daysAhead < 0 {
		daysAhead = 0
	}

	var factors []Factor
	if seasonal != 1.0 {
		factors = append(factors, Factor{
			Name:        "Seasonal adjustment",
			Impact:      seasonal - 1.0,
			Description: fmt.Sprintf("%s season rate multiplier %.2f", season, seasonal),
		})
	}

	adjustment := 1.0
	if in.IsWeekend {
		adjustment += 0.2
		factors = append(factors, Factor{Name: "Weekend premium", Impact: 0.2, Description: "Weekend stays carry higher demand"})
	}
	if in.IsHoliday {
		adjustment += 0.3
		description := "Public holiday on the stay date"
		if in.HolidayName != "" {
			description = fmt.Sprintf("%s on the stay date", in.HolidayName)
		}
		factors = append(factors, Factor{Name: "Holiday premium", Impact: 0.3, Description: description})
	}
	if daysAhead < lastMinuteDays {
		adjustment += 0.15
		factors = append(factors, Factor{Name: "Last-minute booking", Impact: 0.15, Description: fmt.Sprintf("Booked %d days ahead", daysAhead)})
	} else if daysAhead > earlyBookingDays {
		adjustment -= 0.1
		factors = append(factors, Factor{Name: "Early booking discount", Impact: -0.1, Description: fmt.Sprintf("Booked %d days ahead", daysAhead)})
	}
	if n := len(in.LocalEvents); n > 0 {
		impact := 0.1 * float64(n)
		adjustment += impact
		factors = append(factors, Factor{
			Name:        "Local events",
			Impact:      impact,
			Description: strings.Join(in.LocalEvents, ", "),
		})
	}
	adjustment = clamp(adjustment, minDemandAdjustment, maxDemandAdjustment)

	confidence := 0.7
	if daysAhead <= earlyBookingDays {
		confidence += 0.2
	}
	if in.HistoricalAveragePrice > 0 {
		confidence += 0.1
	}

	trend := TrendStable
	switch {
	case in.IsHoliday || len(in.LocalEvents) > 0:
		trend = TrendIncreasing
	case daysAhead > decreasingAfter:
		trend = TrendDecreasing
	}

	price := base * seasonal * adjustment
	if price < 0 {
		price = 0
	}

	return PricePrediction{
		RoomType:       in.RoomType,
		Date:           dateOnly(in.TargetDate),
		PredictedPrice: price,
		Confidence:     clamp(confidence, 0, 1),
		ModelVersion:   e.modelVersion,
		Trend:          trend,
		Factors:        factors,
	}, nil
}

// PriceInputFor builds the model input for one room type and stay date from
// a resolved snapshot.
func (e *Engine) PriceInputFor(snap Snapshot, roomType string, date time.Time) PriceInput {
	holidayName, holiday := e.Holiday(date)
	return PriceInput{
		RoomType:               roomType,
		TargetDate:             date,
		BookingDate:            snap.Reference,
		Season:                 SeasonOf(date),
		IsWeekend:              IsWeekend(date),
		IsHoliday:              holiday,
		HolidayName:            holidayName,
		LocalEvents:            snap.EventsOn(date),
		HistoricalAveragePrice: snap.MetricsFor(roomType).AveragePrice,
	}
}
