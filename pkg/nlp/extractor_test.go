package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tuesday
var referenceNow = time.Date(2026, time.October, 20, 15, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtract_Guests(t *testing.T) {
	e := NewEntityExtractor()

	tests := []struct {
		name     string
		query    string
		want     int
		explicit bool
	}{
		{name: "guests suffix", query: "I need a room for 3 guests", want: 3, explicit: true},
		{name: "people suffix", query: "suite for 4 people please", want: 4, explicit: true},
		{name: "person suffix", query: "a 2 person room", want: 2, explicit: true},
		{name: "standalone integer", query: "deluxe for 5 on friday", want: 5, explicit: true},
		{name: "iso date digits ignored", query: "price on 2026-11-03", want: DefaultGuests, explicit: false},
		{name: "large number ignored", query: "rooms under 150 dollars", want: DefaultGuests, explicit: false},
		{name: "no number", query: "how much is a suite", want: DefaultGuests, explicit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := e.Extract(tt.query, referenceNow)
			assert.Equal(t, tt.want, bag.Guests)
			assert.Equal(t, tt.explicit, bag.Has(EntityGuests))
		})
	}
}

func TestExtract_NextWeekendIsUpcomingSaturday(t *testing.T) {
	e := NewEntityExtractor()

	bag := e.Extract("What will be the price for a deluxe room next weekend?", referenceNow)

	require.Len(t, bag.Dates, 1)
	assert.Equal(t, day(2026, time.October, 24), bag.Dates[0])
	assert.Equal(t, time.Saturday, bag.Dates[0].Weekday())
	assert.Equal(t, "Deluxe", bag.RoomType)
	assert.Equal(t, "next_weekend", bag.Period)
}

func TestUpcomingSaturday(t *testing.T) {
	saturday := day(2026, time.October, 24)
	assert.Equal(t, saturday, UpcomingSaturday(saturday.Add(10*time.Hour)))
	assert.Equal(t, day(2026, time.October, 31), UpcomingSaturday(day(2026, time.October, 25)))
	assert.Equal(t, saturday, UpcomingSaturday(day(2026, time.October, 23)))
}

func TestExtract_DatesInTextOrder(t *testing.T) {
	e := NewEntityExtractor()

	bag := e.Extract("compare next month, 2026-12-24 and tomorrow", referenceNow)

	require.Len(t, bag.Dates, 3)
	assert.Equal(t, day(2026, time.November, 20), bag.Dates[0])
	assert.Equal(t, day(2026, time.December, 24), bag.Dates[1])
	assert.Equal(t, day(2026, time.October, 21), bag.Dates[2])
}

func TestExtract_RelativeDates(t *testing.T) {
	e := NewEntityExtractor()

	assert.True(t, e.Extract("rooms next week", referenceNow).RelativeDates)
	assert.False(t, e.Extract("rooms on 2026-12-01", referenceNow).RelativeDates)
	assert.False(t, e.Extract("from tomorrow until 2026-12-01", referenceNow).RelativeDates)
	assert.False(t, e.Extract("any rooms?", referenceNow).RelativeDates)

	older := e.Extract("suite next week", referenceNow)
	merged := older.Merge(e.Extract("what about 2026-12-01", referenceNow))
	assert.False(t, merged.RelativeDates)
	assert.Equal(t, "next_week", merged.Period)
	assert.Equal(t, []time.Time{day(2026, time.December, 1)}, merged.Dates)
}

func TestExtract_NextWeekDoesNotMatchInsideNextWeekend(t *testing.T) {
	e := NewEntityExtractor()

	dates := e.ExtractDates("next weekend", referenceNow)
	require.Len(t, dates, 1)
	assert.Equal(t, day(2026, time.October, 24), dates[0])

	dates = e.ExtractDates("sometime next week", referenceNow)
	require.Len(t, dates, 1)
	assert.Equal(t, day(2026, time.October, 27), dates[0])
}

func TestExtract_InvalidIsoDateSkipped(t *testing.T) {
	e := NewEntityExtractor()

	bag := e.Extract("price on 2026-13-45", referenceNow)
	assert.Empty(t, bag.Dates)
	assert.False(t, bag.Has(EntityDates))
}

func TestExtract_Defaults(t *testing.T) {
	e := NewEntityExtractor()

	bag := e.Extract("hello there", referenceNow)
	assert.Equal(t, DefaultRoomType, bag.RoomType)
	assert.Equal(t, DefaultGuests, bag.Guests)
	assert.Equal(t, DefaultPeriod, bag.Period)
	assert.Equal(t, PriceRangeAny, bag.PriceRange)
	assert.Empty(t, bag.Dates)
	assert.Empty(t, bag.Explicit)
}

func TestExtract_RoomTypeAndPriceRange(t *testing.T) {
	e := NewEntityExtractor()

	tests := []struct {
		query      string
		roomType   string
		priceRange PriceRange
	}{
		{query: "a cheap STANDARD room", roomType: "Standard", priceRange: PriceRangeLow},
		{query: "luxury presidential suite", roomType: "Suite", priceRange: PriceRangeHigh},
		{query: "moderate executive option", roomType: "Executive", priceRange: PriceRangeMedium},
		{query: "any deluxe", roomType: "Deluxe", priceRange: PriceRangeAny},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			bag := e.Extract(tt.query, referenceNow)
			assert.Equal(t, tt.roomType, bag.RoomType)
			assert.Equal(t, tt.priceRange, bag.PriceRange)
		})
	}
}

func TestExtract_Period(t *testing.T) {
	e := NewEntityExtractor()

	tests := map[string]string{
		"rooms for next week":       "next_week",
		"anything this month":       "this_month",
		"over the weekend":          "weekend",
		"this weekend availability": "this_weekend",
		"no period here":            DefaultPeriod,
	}

	for query, want := range tests {
		period, _ := e.ExtractPeriod(query)
		assert.Equal(t, want, period, query)
	}
}

func TestEntityBag_MergeKeepsEarlierExplicitValues(t *testing.T) {
	e := NewEntityExtractor()

	first := e.Extract("Show me Suite pricing", referenceNow)
	second := e.Extract("for next week", referenceNow)

	merged := DefaultEntities().Merge(first).Merge(second)

	assert.Equal(t, "Suite", merged.RoomType)
	assert.Equal(t, "next_week", merged.Period)
	assert.True(t, merged.Has(EntityRoomType))
	assert.True(t, merged.Has(EntityPeriod))
	require.Len(t, merged.Dates, 1)
	assert.Equal(t, day(2026, time.October, 27), merged.Dates[0])
}

func TestApplyHints(t *testing.T) {
	e := NewEntityExtractor()
	bag := e.Extract("price for tomorrow", referenceNow)

	hinted := e.ApplyHints(bag, map[string]interface{}{
		"roomType": "Penthouse",
		"guests":   float64(3),
		"period":   "next_week",
		"ignored":  true,
	})

	assert.Equal(t, "Penthouse", hinted.RoomType)
	assert.Equal(t, 3, hinted.Guests)
	assert.Equal(t, "next_week", hinted.Period)
	assert.Len(t, hinted.Dates, 1)

	hinted = e.ApplyHints(bag, map[string]interface{}{"roomType": "deluxe"})
	assert.Equal(t, "Deluxe", hinted.RoomType)
}
