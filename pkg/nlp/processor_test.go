package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Intents(t *testing.T) {
	p := NewProcessor()

	tests := []struct {
		query string
		want  Intent
	}{
		{query: "What will be the price for a deluxe room next weekend?", want: IntentPricePrediction},
		{query: "Show me Suite pricing", want: IntentPricePrediction},
		{query: "How much does a standard room cost?", want: IntentPricePrediction},
		{query: "Is there any availability next week?", want: IntentAvailabilityForecast},
		{query: "What is the expected occupancy rate in December?", want: IntentAvailabilityForecast},
		{query: "Show me the price trend for the season", want: IntentTrendAnalysis},
		{query: "Show me the price trend for deluxe rooms", want: IntentTrendAnalysis},
		{query: "How are suite price trends looking?", want: IntentTrendAnalysis},
		{query: "Can you recommend the best time to book?", want: IntentBookingRecommendation},
		{query: "hello, I need help", want: IntentGeneralInquiry},
		{query: "for next week", want: IntentGeneralInquiry},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			result := p.Classify(tt.query)
			assert.Equal(t, tt.want, result.Intent)
			assert.Equal(t, tt.query, result.Query)
		})
	}
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	p := NewProcessor()

	queries := []string{
		"x",
		"for next week",
		"price",
		"price pricing cost rate how much charge tariff fee",
		"trend pattern forecast demand",
		"Ünïcödé prîce?",
		"!!!",
	}

	for _, q := range queries {
		result := p.Classify(q)
		assert.GreaterOrEqual(t, result.Confidence, 0.3, q)
		assert.LessOrEqual(t, result.Confidence, 1.0, q)
	}
}

func TestClassify_ConfidenceIsMatchedShare(t *testing.T) {
	p := NewProcessor()

	result := p.Classify("price pricing cost rate how much charge tariff fee")
	assert.Equal(t, IntentPricePrediction, result.Intent)
	assert.Equal(t, 1.0, result.Confidence)

	result = p.Classify("trend pattern forecast demand peak")
	assert.Equal(t, IntentTrendAnalysis, result.Intent)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
}

func TestClassify_NoMatchFallsBackToGeneral(t *testing.T) {
	p := NewProcessor()

	result := p.Classify("zzz qqq")
	assert.Equal(t, IntentGeneralInquiry, result.Intent)
	assert.Equal(t, 0.3, result.Confidence)
	assert.False(t, result.Matched())
}

func TestClassify_LongerKeywordsWin(t *testing.T) {
	p := NewProcessor()

	// "occupancy" outweighs the "rate" substring
	result := p.Classify("occupancy rate")
	assert.Equal(t, IntentAvailabilityForecast, result.Intent)
	assert.Equal(t, 9, result.Scores[IntentAvailabilityForecast])
	assert.Equal(t, 4, result.Scores[IntentPricePrediction])
}

func TestTokens_DropsShortAndStopWords(t *testing.T) {
	p := NewProcessor()

	tokens := p.Tokens("What is the Price of a Deluxe room?")
	assert.Equal(t, []string{"price", "deluxe", "room"}, tokens)
}

func TestCleanText_StripsDiacritics(t *testing.T) {
	p := NewProcessor()
	assert.Equal(t, "cafe price", p.CleanText("Café, PRICE!"))
}
