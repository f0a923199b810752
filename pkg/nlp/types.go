package nlp

import "time"

type Intent string

const (
	IntentPricePrediction       Intent = "price_prediction"
	IntentAvailabilityForecast  Intent = "availability_forecast"
	IntentTrendAnalysis         Intent = "trend_analysis"
	IntentBookingRecommendation Intent = "booking_recommendation"
	IntentGeneralInquiry        Intent = "general_inquiry"
)

func (i Intent) String() string {
	return string(i)
}

func (i Intent) Valid() bool {
	switch i {
	case IntentPricePrediction, IntentAvailabilityForecast, IntentTrendAnalysis,
		IntentBookingRecommendation, IntentGeneralInquiry:
		return true
	}
	return false
}

type PriceRange string

const (
	PriceRangeLow    PriceRange = "low"
	PriceRangeMedium PriceRange = "medium"
	PriceRangeHigh   PriceRange = "high"
	PriceRangeAny    PriceRange = "any"
)

// Entity keys used in EntityBag.Explicit and in query context hints.
const (
	EntityDates      = "dates"
	EntityRoomType   = "roomType"
	EntityGuests     = "guests"
	EntityPeriod     = "period"
	EntityPriceRange = "priceRange"
)

const (
	DefaultRoomType = "Standard"
	DefaultGuests   = 1
	DefaultPeriod   = "general"
)

type IntentResult struct {
	Intent         Intent         `json:"intent"`
	Confidence     float64        `json:"confidence"`
	Query          string         `json:"query"`
	Matches        []MatchResult  `json:"matches"`
	Scores         map[Intent]int `json:"scores"`
	ProcessingTime string         `json:"processing_time"`
}

// Matched reports whether any keyword fired during classification.
func (r *IntentResult) Matched() bool {
	return len(r.Matches) > 0
}

type MatchResult struct {
	Keyword string  `json:"keyword"`
	Intent  Intent  `json:"intent"`
	Score   float64 `json:"score"`
	Type    string  `json:"type"`
}

// EntityBag holds the parameters pulled out of a query. Explicit lists the
// keys that were actually found in the text; every other field carries its
// default. RelativeDates is set when every date came from a phrase such as
// "next week" rather than a calendar date.
type EntityBag struct {
	Dates         []time.Time `json:"dates"`
	RelativeDates bool        `json:"relativeDates,omitempty"`
	RoomType   string      `json:"roomType"`
	Guests     int         `json:"guests"`
	Period     string      `json:"period"`
	PriceRange PriceRange  `json:"priceRange"`
	Explicit   []string    `json:"explicit,omitempty"`
}

func DefaultEntities() EntityBag {
	return EntityBag{
		Dates:      []time.Time{},
		RoomType:   DefaultRoomType,
		Guests:     DefaultGuests,
		Period:     DefaultPeriod,
		PriceRange: PriceRangeAny,
	}
}

func (b EntityBag) Has(key string) bool {
	for _, k := range b.Explicit {
		if k == key {
			return true
		}
	}
	return false
}

func (b *EntityBag) markExplicit(key string) {
	if !b.Has(key) {
		b.Explicit = append(b.Explicit, key)
	}
}

// Merge returns a copy of b where every key found explicitly in newer
// overwrites the value held by b. Defaults in newer never overwrite.
func (b EntityBag) Merge(newer EntityBag) EntityBag {
	merged := b
	merged.Dates = append([]time.Time{}, b.Dates...)
	merged.Explicit = append([]string{}, b.Explicit...)

	for _, key := range newer.Explicit {
		switch key {
		case EntityDates:
			merged.Dates = append([]time.Time{}, newer.Dates...)
			merged.RelativeDates = newer.RelativeDates
		case EntityRoomType:
			merged.RoomType = newer.RoomType
		case EntityGuests:
			merged.Guests = newer.Guests
		case EntityPeriod:
			merged.Period = newer.Period
		case EntityPriceRange:
			merged.PriceRange = newer.PriceRange
		default:
			continue
		}
		merged.markExplicit(key)
	}

	return merged
}

type INLPProcessor interface {
	Classify(text string) *IntentResult
	ExtractEntities(text string, now time.Time) EntityBag
	ApplyHints(bag EntityBag, hints map[string]interface{}) EntityBag
	CleanText(text string) string
	Tokens(text string) []string
}
