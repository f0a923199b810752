package forecast

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrNoBaseline   = errors.New("no pricing baseline for room type")
	ErrNoInventory  = errors.New("no rooms of this type in inventory")
	ErrEmptySeries  = errors.New("trend analysis needs at least one prediction")
	ErrInvalidRange = errors.New("invalid forecast date range")
)

// IsNoData reports whether err means the model had nothing meaningful to
// work from, as opposed to an internal failure.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoBaseline) || errors.Is(err, ErrNoInventory)
}

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "Increasing"
	TrendDecreasing TrendDirection = "Decreasing"
	TrendStable     TrendDirection = "Stable"
)

type Factor struct {
	Name        string  `json:"name"`
	Impact      float64 `json:"impact"`
	Description string  `json:"description"`
}

type PricePrediction struct {
	RoomType       string         `json:"roomType"`
	Date           time.Time      `json:"date"`
	PredictedPrice float64        `json:"predictedPrice"`
	Confidence     float64        `json:"confidence"`
	ModelVersion   string         `json:"modelVersion"`
	Trend          TrendDirection `json:"trend"`
	Factors        []Factor       `json:"factors"`
}

type AvailabilityForecast struct {
	RoomType                string    `json:"roomType"`
	Date                    time.Time `json:"date"`
	TotalRooms              int       `json:"totalRooms"`
	PredictedAvailableRooms int       `json:"predictedAvailableRooms"`
	PredictedOccupancyRate  float64   `json:"predictedOccupancyRate"`
	Confidence              float64   `json:"confidence"`
	Factors                 []Factor  `json:"factors"`
}

type DemandForecast struct {
	RoomType          string         `json:"roomType"`
	Date              time.Time      `json:"date"`
	PredictedDemand   int            `json:"predictedDemand"`
	HistoricalAverage int            `json:"historicalAverage"`
	DemandVariation   float64        `json:"demandVariation"`
	Trend             TrendDirection `json:"trend"`
	Confidence        float64        `json:"confidence"`
	Factors           []Factor       `json:"factors"`
}

type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Label string    `json:"label"`
}

type TrendAnalysis struct {
	RoomType     string         `json:"roomType"`
	AnalysisDate time.Time      `json:"analysisDate"`
	Direction    TrendDirection `json:"direction"`
	Strength     float64        `json:"strength"`
	Points       []TrendPoint   `json:"points"`
	Insights     []string       `json:"insights"`
}

// RoomMetrics is the historical aggregate supplied by the metrics and
// inventory providers for one room type.
type RoomMetrics struct {
	RoomType      string  `json:"roomType" db:"room_type"`
	TotalRooms    int     `json:"totalRooms" db:"total_rooms"`
	AveragePrice  float64 `json:"averagePrice" db:"average_price"`
	OccupancyRate float64 `json:"occupancyRate" db:"occupancy_rate"`
}

// Snapshot carries every external input a forecast run needs, already
// resolved by the caller.
type Snapshot struct {
	Reference time.Time
	Metrics   map[string]RoomMetrics
	Events    map[string][]string
}

const dateKeyLayout = "2006-01-02"

func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

func (s Snapshot) MetricsFor(roomType string) RoomMetrics {
	if m, ok := s.Metrics[roomType]; ok {
		return m
	}
	for key, m := range s.Metrics {
		if strings.EqualFold(key, roomType) {
			return m
		}
	}
	return RoomMetrics{RoomType: roomType}
}

func (s Snapshot) EventsOn(date time.Time) []string {
	return s.Events[DateKey(date)]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	from := dateOnly(a)
	to := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, from.Location())
	return int(math.Round(to.Sub(from).Hours() / 24))
}
