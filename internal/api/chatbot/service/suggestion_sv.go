package chatbotService

import (
	"context"
	"errors"

	"HotelGolang/internal/api/chatbot"
	contextPkg "HotelGolang/pkg/context"
	"HotelGolang/pkg/conversation"
	"HotelGolang/pkg/nlp"

	"github.com/sirupsen/logrus"
)

var followUpSuggestions = map[nlp.Intent][]string{
	nlp.IntentPricePrediction: {
		"How many rooms are available on those dates?",
		"Is it cheaper to stay on a weekday?",
		"Show me the demand trend for the next two weeks",
		"When is the best time to book?",
	},
	nlp.IntentAvailabilityForecast: {
		"What's the price for those dates?",
		"Which days are the busiest this month?",
		"How many suites are available next weekend?",
	},
	nlp.IntentTrendAnalysis: {
		"What's the price for a deluxe room next weekend?",
		"When is the best time to book?",
		"How many rooms are available next week?",
	},
	nlp.IntentBookingRecommendation: {
		"What's the price for a standard room next month?",
		"How many rooms are available next weekend?",
		"Show me the demand trend for the next two weeks",
	},
}

func (s *chatbotService) GetSuggestions(ctx context.Context, sessionID string) chatbot.SuggestionsResponse {
	if sessionID == "" {
		return chatbot.SuggestionsResponse{Suggestions: append([]string{}, defaultSuggestions...)}
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, conversation.ErrSessionNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"session_id": sessionID,
				"error":      err.Error(),
			}).Warn("Failed to read conversation context for suggestions")
		}
		return chatbot.SuggestionsResponse{Suggestions: append([]string{}, defaultSuggestions...)}
	}

	suggestions, ok := followUpSuggestions[session.LastIntent]
	if !ok {
		suggestions = defaultSuggestions
	}
	return chatbot.SuggestionsResponse{Suggestions: append([]string{}, suggestions...)}
}
