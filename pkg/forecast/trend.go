package forecast

import (
	"fmt"
	"math"
	"time"
)

const trendThreshold = 0.1

var trendInsights = map[TrendDirection][]string{
	TrendIncreasing: {
		"Prices are expected to rise over this period.",
		"Consider booking earlier to lock in a lower rate.",
	},
	TrendDecreasing: {
		"Prices are expected to ease over this period.",
		"Waiting a little longer could secure a better rate.",
	},
	TrendStable: {
		"Prices are expected to stay fairly steady over this period.",
		"Book whenever it suits you; timing has little effect on the rate.",
	},
}

// AnalyzeTrend derives direction, strength and insights from an ordered
// price series. The series is expected to cover a single room type.
func AnalyzeTrend(predictions []PricePrediction, analyzedAt time.Time) (TrendAnalysis, error) {
	if len(predictions) == 0 {
		return TrendAnalysis{}, ErrEmptySeries
	}

	points := make([]TrendPoint, 0, len(predictions))
	lowest, highest := predictions[0], predictions[0]
	for _, p := range predictions {
		points = append(points, TrendPoint{
			Date:  p.Date,
			Value: p.PredictedPrice,
			Label: p.Date.Format("Mon 02 Jan"),
		})
		if p.PredictedPrice < lowest.PredictedPrice {
			lowest = p
		}
		if p.PredictedPrice > highest.PredictedPrice {
			highest = p
		}
	}

	analysis := TrendAnalysis{
		RoomType:     predictions[0].RoomType,
		AnalysisDate: analyzedAt,
		Direction:    TrendStable,
		Strength:     0,
		Points:       points,
	}

	if len(predictions) > 1 {
		first := predictions[0].PredictedPrice
		last := predictions[len(predictions)-1].PredictedPrice
		if first > 0 {
			change := (last - first) / first
			switch {
			case change > trendThreshold:
				analysis.Direction = TrendIncreasing
			case change < -trendThreshold:
				analysis.Direction = TrendDecreasing
			}
		}
		analysis.Strength = meanAbsoluteChange(predictions)
	}

	analysis.Insights = append(analysis.Insights, trendInsights[analysis.Direction]...)
	if len(predictions) > 1 && highest.PredictedPrice > lowest.PredictedPrice {
		analysis.Insights = append(analysis.Insights,
			fmt.Sprintf("Lowest predicted rate is $%.2f on %s.", lowest.PredictedPrice, lowest.Date.Format("Mon 02 Jan")),
			fmt.Sprintf("Highest predicted rate is $%.2f on %s.", highest.PredictedPrice, highest.Date.Format("Mon 02 Jan")),
		)
	}

	return analysis, nil
}

func meanAbsoluteChange(predictions []PricePrediction) float64 {
	total, pairs := 0.0, 0
	for i := 1; i < len(predictions); i++ {
		prev := predictions[i-1].PredictedPrice
		if prev <= 0 {
			continue
		}
		total += math.Abs(predictions[i].PredictedPrice-prev) / prev
		pairs++
	}
	if pairs == 0 {
		return 0
	}
	return total / float64(pairs)
}
