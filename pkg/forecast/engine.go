package forecast

import (
	"fmt"
	"time"
)

const (
	DefaultModelVersion = "heuristic-v1"
	MaxRangeDays        = 366
)

type Engine struct {
	modelVersion string
	holidays     HolidayCalendar
}

type Option func(*Engine)

func WithModelVersion(version string) Option {
	return func(e *Engine) {
		if version != "" {
			e.modelVersion = version
		}
	}
}

func NewEngine(options ...Option) *Engine {
	e := &Engine{
		modelVersion: DefaultModelVersion,
		holidays:     DefaultHolidays(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) ModelVersion() string {
	return e.modelVersion
}

func (e *Engine) Holiday(date time.Time) (string, bool) {
	return e.holidays.HolidayName(date)
}

// Days lists every calendar day from start to end inclusive.
func Days(start, end time.Time) ([]time.Time, error) {
	from, to := dateOnly(start), dateOnly(end)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end %s before start %s", ErrInvalidRange, DateKey(to), DateKey(from))
	}

	days := make([]time.Time, 0, daysBetween(from, to)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
		if len(days) > MaxRangeDays {
			return nil, fmt.Errorf("%w: more than %d days", ErrInvalidRange, MaxRangeDays)
		}
	}
	return days, nil
}

func (e *Engine) PriceRange(snap Snapshot, roomTypes []string, start, end time.Time) ([]PricePrediction, error) {
	days, err := Days(start, end)
	if err != nil {
		return nil, err
	}

	out := make([]PricePrediction, 0, len(days)*len(roomTypes))
	for _, roomType := range roomTypes {
		for _, d := range days {
			p, err := e.PredictPrice(e.PriceInputFor(snap, roomType, d))
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}
	return out, nil
}

func (e *Engine) AvailabilityRange(snap Snapshot, roomTypes []string, start, end time.Time) ([]AvailabilityForecast, error) {
	days, err := Days(start, end)
	if err != nil {
		return nil, err
	}

	out := make([]AvailabilityForecast, 0, len(days)*len(roomTypes))
	for _, roomType := range roomTypes {
		for _, d := range days {
			f, err := e.PredictAvailability(e.AvailabilityInputFor(snap, roomType, d))
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
	}
	return out, nil
}

func (e *Engine) DemandRange(snap Snapshot, roomTypes []string, start, end time.Time) ([]DemandForecast, error) {
	days, err := Days(start, end)
	if err != nil {
		return nil, err
	}

	out := make([]DemandForecast, 0, len(days)*len(roomTypes))
	for _, roomType := range roomTypes {
		for _, d := range days {
			f, err := e.PredictDemand(e.DemandInputFor(snap, roomType, d))
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
	}
	return out, nil
}
