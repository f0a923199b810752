package chatbotService

import (
	"context"
	"errors"

	"HotelGolang/internal/api/chatbot"
	contextPkg "HotelGolang/pkg/context"
	"HotelGolang/pkg/conversation"

	"github.com/sirupsen/logrus"
)

func (s *chatbotService) GetSession(ctx context.Context, sessionID string) (conversation.ConversationContext, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, conversation.ErrSessionNotFound) {
			return conversation.ConversationContext{}, chatbot.ErrSessionNotFound
		}
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to read conversation context")
		return conversation.ConversationContext{}, chatbot.ErrSessionUnavailable
	}
	return session, nil
}

// Analyze exposes the classifier and extractor output for a text without
// touching any session.
func (s *chatbotService) Analyze(ctx context.Context, req chatbot.AnalyzeRequest) chatbot.AnalyzeResponse {
	entities := s.processor.ExtractEntities(req.Text, s.utils.Now())
	entities = s.processor.ApplyHints(entities, req.Context)

	return chatbot.AnalyzeResponse{
		CleanText: s.processor.CleanText(req.Text),
		Tokens:    s.processor.Tokens(req.Text),
		Intent:    s.processor.Classify(req.Text),
		Entities:  entities,
	}
}
