package chatbotService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"HotelGolang/internal/api/chatbot"
	"HotelGolang/internal/entity"
	contextPkg "HotelGolang/pkg/context"
	"HotelGolang/pkg/conversation"
	"HotelGolang/pkg/forecast"
	"HotelGolang/pkg/nlp"

	"github.com/sirupsen/logrus"
)

const emptyQueryMessage = "Please type a question, for example \"What's the price for a deluxe room next weekend?\""

func (s *chatbotService) HandleQuery(ctx context.Context, req chatbot.QueryRequest) (resp chatbot.ChatbotResponse) {
	started := time.Now()
	requestID := contextPkg.GetRequestID(ctx)
	intent := nlp.IntentGeneralInquiry

	defer func() {
		if r := recover(); r != nil {
			resp = s.errorResponse(ctx, intent, fmt.Errorf("panic: %v", r))
		}
		resp.SessionID = req.SessionID
		resp.ProcessingTimeMs = time.Since(started).Milliseconds()
		resp.InteractionID = s.recordInteraction(ctx, req, intent, resp)
	}()

	if strings.TrimSpace(req.Query) == "" {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": req.SessionID,
		}).Warn("Rejected empty chatbot query")
		return chatbot.ChatbotResponse{
			Response:        emptyQueryMessage,
			ResponseType:    chatbot.ResponseTypeError,
			ConfidenceLevel: 0,
			Suggestions:     append([]string{}, defaultSuggestions...),
		}
	}

	now := s.utils.Now()

	entities := s.processor.ExtractEntities(req.Query, now)
	entities = s.processor.ApplyHints(entities, req.Context)
	classification := s.processor.Classify(req.Query)
	intent = s.resolveIntent(ctx, req.SessionID, classification, entities)

	session, err := s.store.Update(ctx, conversation.Turn{
		SessionID:  req.SessionID,
		CustomerID: req.CustomerID,
		Query:      req.Query,
		Intent:     intent,
		Entities:   entities,
	})
	if err != nil {
		// answer from this turn alone rather than failing the query
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": req.SessionID,
			"error":      err.Error(),
		}).Warn("Failed to update conversation context")
		session = conversation.ConversationContext{
			SessionID: req.SessionID,
			Entities:  nlp.DefaultEntities().Merge(entities),
		}
	}

	p := planFor(s.settings, intent, session.Entities, now)
	snap := s.loadSnapshot(ctx, p, now)

	resp = s.dispatch(ctx, p, session.Entities, classification, snap)
	resp.Intent = intent

	s.log.WithFields(logrus.Fields{
		"request_id":    requestID,
		"session_id":    req.SessionID,
		"intent":        intent.String(),
		"response_type": resp.ResponseType,
		"confidence":    resp.ConfidenceLevel,
	}).Info("Chatbot query processed")

	return resp
}

// resolveIntent carries the previous intent over to a follow-up that only
// adds parameters, such as "for next week" after a price question.
func (s *chatbotService) resolveIntent(ctx context.Context, sessionID string, classification *nlp.IntentResult, entities nlp.EntityBag) nlp.Intent {
	if classification.Matched() || len(entities.Explicit) == 0 {
		return classification.Intent
	}

	previous, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, conversation.ErrSessionNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"session_id": sessionID,
				"error":      err.Error(),
			}).Warn("Failed to read conversation context")
		}
		return classification.Intent
	}

	if previous.LastIntent.Valid() && previous.LastIntent != nlp.IntentGeneralInquiry {
		return previous.LastIntent
	}
	return classification.Intent
}

// loadSnapshot fetches what the plan needs. A failed lookup degrades to an
// empty snapshot so the rate card and default occupancy still answer.
func (s *chatbotService) loadSnapshot(ctx context.Context, p plan, now time.Time) forecast.Snapshot {
	empty := forecast.Snapshot{Reference: now}
	if !p.fetch || s.snapshots == nil {
		return empty
	}

	snap, err := s.snapshots.LoadSnapshot(ctx, p.roomTypes, p.start, p.end)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"room_types": p.roomTypes,
			"error":      err.Error(),
		}).Warn("Failed to load forecast snapshot, using defaults")
		return empty
	}

	snap.Reference = now
	return snap
}

// recordInteraction stores the processed query for later tuning. Storage
// failures are logged and never reach the caller.
func (s *chatbotService) recordInteraction(ctx context.Context, req chatbot.QueryRequest, intent nlp.Intent, resp chatbot.ChatbotResponse) string {
	requestID := contextPkg.GetRequestID(ctx)

	interactionID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to generate interaction id")
		return ""
	}

	if s.chatbotRepo == nil {
		return interactionID
	}

	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to create repository client")
		return interactionID
	}

	err = repo.Interactions.CreateInteraction(ctx, entity.Interaction{
		ID:               interactionID,
		SessionID:        req.SessionID,
		CustomerID:       req.CustomerID,
		Query:            req.Query,
		Intent:           intent.String(),
		ResponseType:     string(resp.ResponseType),
		Confidence:       resp.ConfidenceLevel,
		ProcessingTimeMs: resp.ProcessingTimeMs,
		CreatedAt:        s.utils.Now(),
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":     requestID,
			"interaction_id": interactionID,
			"error":          err.Error(),
		}).Warn("Failed to record chatbot interaction")
	}

	return interactionID
}
