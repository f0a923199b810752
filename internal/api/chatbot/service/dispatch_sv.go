package chatbotService

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"HotelGolang/internal/api/chatbot"
	contextPkg "HotelGolang/pkg/context"
	"HotelGolang/pkg/forecast"
	"HotelGolang/pkg/log"
	"HotelGolang/pkg/nlp"
)

const (
	apologyMessage    = "I'm sorry, I couldn't process your request right now. Please try again in a moment."
	noDataConfidence  = 0.3
	weekdayDateLayout = "Monday, January 2"
)

var defaultSuggestions = []string{
	"What's the price for a deluxe room next weekend?",
	"How many rooms are available next week?",
	"Show me the demand trend for the next two weeks",
	"When is the best time to book?",
}

// plan is what a query needs from the outside world before it can be
// answered: which room types and which days the snapshot must cover.
type plan struct {
	intent    nlp.Intent
	roomTypes []string
	start     time.Time
	end       time.Time
	fetch     bool
}

func planFor(settings Settings, intent nlp.Intent, entities nlp.EntityBag, now time.Time) plan {
	today := nlp.StartOfDay(now)
	p := plan{intent: intent, roomTypes: []string{roomTypeOf(entities)}}

	switch intent {
	case nlp.IntentPricePrediction:
		date := nearestDate(entities.Dates, today)
		if date.IsZero() {
			date = today.AddDate(0, 0, settings.DefaultLeadDays)
		}
		p.start, p.end, p.fetch = date, date, true

	case nlp.IntentAvailabilityForecast:
		p.start, p.end = windowFor(entities, today, settings.AvailabilityWindowDays)
		p.fetch = true

	case nlp.IntentTrendAnalysis:
		p.start, p.end = windowFor(entities, today, settings.TrendWindowDays)
		if p.start.Equal(p.end) {
			p.end = p.start.AddDate(0, 0, settings.TrendWindowDays-1)
		}
		p.fetch = true
	}

	return p
}

func roomTypeOf(entities nlp.EntityBag) string {
	if strings.TrimSpace(entities.RoomType) == "" {
		return nlp.DefaultRoomType
	}
	return entities.RoomType
}

// nearestDate picks the extracted date closest to today, or the zero time
// when there is none.
func nearestDate(dates []time.Time, today time.Time) time.Time {
	var best time.Time
	bestDistance := math.MaxFloat64
	for _, d := range dates {
		distance := math.Abs(nlp.StartOfDay(d).Sub(today).Hours())
		if distance < bestDistance {
			best, bestDistance = nlp.StartOfDay(d), distance
		}
	}
	return best
}

// windowFor resolves the date window of a range query. A single relative
// date yields to its period ("next week" is the whole week). Otherwise the
// dates span the window, then the period token, then the default window.
func windowFor(entities nlp.EntityBag, today time.Time, defaultDays int) (time.Time, time.Time) {
	if len(entities.Dates) == 1 && entities.RelativeDates {
		if start, end, ok := periodWindow(entities.Period, today); ok {
			return start, end
		}
	}

	if len(entities.Dates) > 0 {
		start, end := nlp.StartOfDay(entities.Dates[0]), nlp.StartOfDay(entities.Dates[0])
		for _, d := range entities.Dates[1:] {
			d = nlp.StartOfDay(d)
			if d.Before(start) {
				start = d
			}
			if d.After(end) {
				end = d
			}
		}
		return start, end
	}

	if start, end, ok := periodWindow(entities.Period, today); ok {
		return start, end
	}

	return today, today.AddDate(0, 0, defaultDays-1)
}

func periodWindow(period string, today time.Time) (time.Time, time.Time, bool) {
	switch period {
	case "today":
		return today, today, true
	case "tomorrow":
		d := today.AddDate(0, 0, 1)
		return d, d, true
	case "this_week":
		daysToSunday := (7 - int(today.Weekday())) % 7
		return today, today.AddDate(0, 0, daysToSunday), true
	case "next_week":
		return today.AddDate(0, 0, 7), today.AddDate(0, 0, 13), true
	case "weekend", "this_weekend", "next_weekend":
		saturday := nlp.UpcomingSaturday(today)
		if today.Weekday() == time.Sunday && period != "next_weekend" {
			return today, today, true
		}
		return saturday, saturday.AddDate(0, 0, 1), true
	case "this_month":
		last := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, today.Location())
		return today, last, true
	case "next_month":
		first := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
		return first, first.AddDate(0, 1, -1), true
	}
	return time.Time{}, time.Time{}, false
}

// dispatch answers a planned query from an already resolved snapshot. It
// performs no I/O; failures and panics come back as error responses.
func (s *chatbotService) dispatch(
	ctx context.Context,
	p plan,
	entities nlp.EntityBag,
	classification *nlp.IntentResult,
	snap forecast.Snapshot,
) (resp chatbot.ChatbotResponse) {
	defer func() {
		if r := recover(); r != nil {
			resp = s.errorResponse(ctx, p.intent, fmt.Errorf("panic: %v", r))
		}
	}()

	var err error
	switch p.intent {
	case nlp.IntentPricePrediction:
		resp, err = s.answerPrice(p, snap)
	case nlp.IntentAvailabilityForecast:
		resp, err = s.answerAvailability(p, snap)
	case nlp.IntentTrendAnalysis:
		resp, err = s.answerTrend(p, snap)
	case nlp.IntentBookingRecommendation:
		resp = answerBooking(entities, classification.Confidence)
	default:
		resp = answerGeneral(classification.Confidence)
	}

	if err != nil {
		if forecast.IsNoData(err) {
			return noDataResponse(p)
		}
		return s.errorResponse(ctx, p.intent, err)
	}

	resp.ConfidenceLevel = clamp01(resp.ConfidenceLevel)
	return resp
}

func (s *chatbotService) answerPrice(p plan, snap forecast.Snapshot) (chatbot.ChatbotResponse, error) {
	roomType := p.roomTypes[0]
	prediction, err := s.engine.PredictPrice(s.engine.PriceInputFor(snap, roomType, p.start))
	if err != nil {
		return chatbot.ChatbotResponse{}, err
	}

	text := fmt.Sprintf(
		"The predicted price for a %s room on %s is $%.2f per night (%.0f%% confidence).",
		roomType, prediction.Date.Format(weekdayDateLayout), prediction.PredictedPrice, prediction.Confidence*100,
	)
	if len(prediction.Factors) > 0 {
		names := make([]string, 0, len(prediction.Factors))
		for _, f := range prediction.Factors {
			names = append(names, strings.ToLower(f.Name))
		}
		text += " Main factors: " + strings.Join(names, ", ") + "."
	}

	return chatbot.ChatbotResponse{
		Response:        text,
		ResponseType:    chatbot.ResponseTypePrediction,
		ConfidenceLevel: prediction.Confidence,
		Data: &chatbot.ResponseData{
			Type:   chatbot.DataTypePrice,
			Prices: []forecast.PricePrediction{prediction},
		},
		Suggestions: []string{
			"How many rooms are available on that date?",
			fmt.Sprintf("Show me the price trend for %s rooms", strings.ToLower(roomType)),
			"When is the best time to book?",
		},
	}, nil
}

func (s *chatbotService) answerAvailability(p plan, snap forecast.Snapshot) (chatbot.ChatbotResponse, error) {
	forecasts, err := s.engine.AvailabilityRange(snap, p.roomTypes, p.start, p.end)
	if err != nil {
		return chatbot.ChatbotResponse{}, err
	}

	var available, occupancy, confidence float64
	for _, f := range forecasts {
		available += float64(f.PredictedAvailableRooms)
		occupancy += f.PredictedOccupancyRate
		confidence += f.Confidence
	}
	n := float64(len(forecasts))
	available, occupancy, confidence = available/n, occupancy/n, confidence/n

	roomType := p.roomTypes[0]
	var text string
	if p.start.Equal(p.end) {
		text = fmt.Sprintf(
			"On %s we expect %.0f of %d %s rooms to be available, an occupancy of %.0f%%.",
			p.start.Format(weekdayDateLayout), available, forecasts[0].TotalRooms, roomType, occupancy*100,
		)
	} else {
		text = fmt.Sprintf(
			"Between %s and %s we expect on average %.1f of %d %s rooms to be available per night, an average occupancy of %.0f%%.",
			p.start.Format(weekdayDateLayout), p.end.Format(weekdayDateLayout), available, forecasts[0].TotalRooms, roomType, occupancy*100,
		)
	}
	if occupancy >= 0.9 {
		text += " Availability is tight, so booking soon is recommended."
	}

	return chatbot.ChatbotResponse{
		Response:        text,
		ResponseType:    chatbot.ResponseTypePrediction,
		ConfidenceLevel: confidence,
		Data: &chatbot.ResponseData{
			Type:         chatbot.DataTypeAvailability,
			Availability: forecasts,
		},
		Suggestions: []string{
			fmt.Sprintf("What's the price for a %s room on those dates?", strings.ToLower(roomType)),
			"Which days are the busiest?",
			"When is the best time to book?",
		},
	}, nil
}

func (s *chatbotService) answerTrend(p plan, snap forecast.Snapshot) (chatbot.ChatbotResponse, error) {
	predictions, err := s.engine.PriceRange(snap, p.roomTypes, p.start, p.end)
	if err != nil {
		return chatbot.ChatbotResponse{}, err
	}

	analysis, err := forecast.AnalyzeTrend(predictions, snap.Reference)
	if err != nil {
		return chatbot.ChatbotResponse{}, err
	}

	confidence := 0.0
	for _, prediction := range predictions {
		confidence += prediction.Confidence
	}
	confidence /= float64(len(predictions))

	data := &chatbot.ResponseData{Type: chatbot.DataTypeTrend, Trend: &analysis}
	// demand is optional context, a room type without inventory still gets its price trend
	if demand, err := s.engine.DemandRange(snap, p.roomTypes, p.start, p.end); err == nil {
		data.Demand = demand
	}

	roomType := p.roomTypes[0]
	text := fmt.Sprintf(
		"%s room prices look %s between %s and %s, with an average day-to-day change of %.1f%%.",
		roomType, directionWord(analysis.Direction),
		p.start.Format(weekdayDateLayout), p.end.Format(weekdayDateLayout), analysis.Strength*100,
	)
	if len(analysis.Insights) > 0 {
		text += " " + strings.Join(analysis.Insights, " ")
	}

	return chatbot.ChatbotResponse{
		Response:        text,
		ResponseType:    chatbot.ResponseTypePrediction,
		ConfidenceLevel: confidence,
		Data:            data,
		Suggestions: []string{
			fmt.Sprintf("What's the price for a %s room next weekend?", strings.ToLower(roomType)),
			"How many rooms are available next week?",
			"When is the best time to book?",
		},
	}, nil
}

func directionWord(d forecast.TrendDirection) string {
	switch d {
	case forecast.TrendIncreasing:
		return "to be rising"
	case forecast.TrendDecreasing:
		return "to be easing"
	default:
		return "steady"
	}
}

var bookingAdvice = map[nlp.PriceRange]string{
	nlp.PriceRangeLow: "For the best value, book more than 30 days ahead and stay on weekdays outside the summer peak. " +
		"Standard rooms offer the lowest rates, and winter stays are typically the cheapest.",
	nlp.PriceRangeMedium: "Deluxe rooms on weekdays strike a good balance between comfort and price. " +
		"Booking two to four weeks ahead usually secures a fair rate without the last-minute premium.",
	nlp.PriceRangeHigh: "For a premium stay, reserve a Suite or Presidential room early, especially for weekends and holidays " +
		"when they sell out first. Early reservations also lock in the rate before demand peaks.",
	nlp.PriceRangeAny: "Booking more than 30 days ahead usually earns an early booking discount, and weekday stays avoid the weekend premium. " +
		"Try to avoid holidays and local event dates if your plans are flexible.",
}

func answerBooking(entities nlp.EntityBag, confidence float64) chatbot.ChatbotResponse {
	advice, ok := bookingAdvice[entities.PriceRange]
	if !ok {
		advice = bookingAdvice[nlp.PriceRangeAny]
	}

	return chatbot.ChatbotResponse{
		Response:        advice,
		ResponseType:    chatbot.ResponseTypeSuggestion,
		ConfidenceLevel: confidence,
		Suggestions: []string{
			"What's the price for a standard room next month?",
			"Show me the demand trend for the next two weeks",
			"How many rooms are available next weekend?",
		},
	}
}

func answerGeneral(confidence float64) chatbot.ChatbotResponse {
	return chatbot.ChatbotResponse{
		Response: "I can help you with room price predictions, availability forecasts, pricing trends and booking advice. " +
			"Try one of the questions below.",
		ResponseType:    chatbot.ResponseTypeInformation,
		ConfidenceLevel: confidence,
		Suggestions:     append([]string{}, defaultSuggestions...),
	}
}

func noDataResponse(p plan) chatbot.ChatbotResponse {
	return chatbot.ChatbotResponse{
		Response: fmt.Sprintf(
			"I don't have enough data to forecast %s rooms yet. Our room types are Standard, Deluxe, Executive, Suite and Presidential.",
			strings.Join(p.roomTypes, ", "),
		),
		ResponseType:    chatbot.ResponseTypeInformation,
		ConfidenceLevel: noDataConfidence,
		Suggestions:     append([]string{}, defaultSuggestions...),
	}
}

func (s *chatbotService) errorResponse(ctx context.Context, intent nlp.Intent, err error) chatbot.ChatbotResponse {
	log.ErrorWithTraceID(s.log, log.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"intent":     intent.String(),
		"error":      err.Error(),
	}, "Failed to process chatbot query")

	return chatbot.ChatbotResponse{
		Response:        apologyMessage,
		ResponseType:    chatbot.ResponseTypeError,
		ConfidenceLevel: 0,
		Suggestions:     append([]string{}, defaultSuggestions...),
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
