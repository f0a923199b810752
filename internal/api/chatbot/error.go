package chatbot

import "HotelGolang/pkg/response"

var (
	ErrSessionNotFound    = response.NewError(404, "conversation session not found or expired")
	ErrCreateFeedback     = response.NewError(500, "failed to save feedback")
	ErrListFeedback       = response.NewError(500, "failed to list feedback")
	ErrSessionUnavailable = response.NewError(503, "conversation store unavailable")
)
