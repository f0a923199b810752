package chatbotService

import (
	"context"

	"HotelGolang/internal/api/chatbot"
	"HotelGolang/internal/entity"
	contextPkg "HotelGolang/pkg/context"

	"github.com/sirupsen/logrus"
)

func (s *chatbotService) SubmitFeedback(ctx context.Context, req chatbot.FeedbackRequest) (*chatbot.FeedbackResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.chatbotRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, chatbot.ErrCreateFeedback
	}
	defer repo.Rollback()

	now := s.utils.Now()
	feedbackID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return nil, chatbot.ErrCreateFeedback
	}

	feedback := entity.Feedback{
		ID:            feedbackID,
		InteractionID: req.InteractionID,
		Rating:        req.Rating,
		Comments:      req.Comments,
		CreatedAt:     now,
	}

	if err := repo.Feedback.CreateFeedback(ctx, feedback); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":     requestID,
			"interaction_id": req.InteractionID,
			"error":          err.Error(),
		}).Error("Failed to create feedback")
		return nil, chatbot.ErrCreateFeedback
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, chatbot.ErrCreateFeedback
	}

	s.log.WithFields(logrus.Fields{
		"request_id":     requestID,
		"interaction_id": req.InteractionID,
		"rating":         req.Rating,
	}).Info("Feedback received")

	return makeFeedbackResponse(feedback), nil
}

func (s *chatbotService) ListFeedback(ctx context.Context, page, limit int) (*chatbot.FeedbackListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, chatbot.ErrListFeedback
	}

	offset := (page - 1) * limit
	rows, err := repo.Feedback.ListFeedback(ctx, limit, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list feedback")
		return nil, chatbot.ErrListFeedback
	}

	total, average, err := repo.Feedback.GetFeedbackStats(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load feedback stats")
		return nil, chatbot.ErrListFeedback
	}

	resp := &chatbot.FeedbackListResponse{
		Feedback:      make([]chatbot.FeedbackResponse, 0, len(rows)),
		Total:         total,
		AverageRating: average,
	}
	for _, f := range rows {
		resp.Feedback = append(resp.Feedback, *makeFeedbackResponse(f))
	}

	return resp, nil
}

func makeFeedbackResponse(f entity.Feedback) *chatbot.FeedbackResponse {
	return &chatbot.FeedbackResponse{
		ID:            f.ID,
		InteractionID: f.InteractionID,
		Rating:        f.Rating,
		Comments:      f.Comments,
		CreatedAt:     f.CreatedAt,
	}
}
