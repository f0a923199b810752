package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(prices ...float64) []PricePrediction {
	out := make([]PricePrediction, 0, len(prices))
	start := date(2026, time.October, 20)
	for i, p := range prices {
		out = append(out, PricePrediction{
			RoomType:       "Deluxe",
			Date:           start.AddDate(0, 0, i),
			PredictedPrice: p,
		})
	}
	return out
}

func TestAnalyzeTrend_Direction(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   TrendDirection
	}{
		{"rising", []float64{100, 105, 118}, TrendIncreasing},
		{"flat", []float64{100, 101, 99}, TrendStable},
		{"falling", []float64{100, 95, 85}, TrendDecreasing},
		{"exactly at threshold", []float64{100, 110}, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AnalyzeTrend(series(tt.prices...), bookingDate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Direction)
			assert.Len(t, got.Points, len(tt.prices))
			assert.Equal(t, "Deluxe", got.RoomType)
			assert.Equal(t, bookingDate, got.AnalysisDate)
		})
	}
}

func TestAnalyzeTrend_Strength(t *testing.T) {
	got, err := AnalyzeTrend(series(100, 105, 118), bookingDate)
	require.NoError(t, err)

	want := (5.0/100 + 13.0/105) / 2
	assert.InDelta(t, want, got.Strength, 1e-9)
	assert.Contains(t, got.Insights, "Lowest predicted rate is $100.00 on Tue 20 Oct.")
	assert.Contains(t, got.Insights, "Highest predicted rate is $118.00 on Thu 22 Oct.")
	assert.Equal(t, "Tue 20 Oct", got.Points[0].Label)
}

func TestAnalyzeTrend_SinglePoint(t *testing.T) {
	got, err := AnalyzeTrend(series(180), bookingDate)
	require.NoError(t, err)

	assert.Equal(t, TrendStable, got.Direction)
	assert.Zero(t, got.Strength)
	assert.Equal(t, trendInsights[TrendStable], got.Insights)
}

func TestAnalyzeTrend_Empty(t *testing.T) {
	_, err := AnalyzeTrend(nil, bookingDate)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestAnalyzeTrend_EngineSeries(t *testing.T) {
	e := NewEngine()
	snap := Snapshot{Reference: bookingDate}

	preds, err := e.PriceRange(snap, []string{"Standard"}, date(2026, time.October, 20), date(2026, time.November, 2))
	require.NoError(t, err)

	got, err := AnalyzeTrend(preds, bookingDate)
	require.NoError(t, err)
	assert.Len(t, got.Points, 14)
	assert.Greater(t, got.Strength, 0.0)
	assert.NotEmpty(t, got.Insights)
}
