package chatbot

import (
	"time"

	"HotelGolang/pkg/forecast"
	"HotelGolang/pkg/nlp"
)

type ResponseType string

const (
	ResponseTypePrediction  ResponseType = "prediction"
	ResponseTypeInformation ResponseType = "information"
	ResponseTypeSuggestion  ResponseType = "suggestion"
	ResponseTypeError       ResponseType = "error"
)

// Payload type tags carried in ResponseData.Type.
const (
	DataTypePrice        = "price"
	DataTypeAvailability = "availability"
	DataTypeTrend        = "trend"
)

type QueryRequest struct {
	Query      string                 `json:"query" validate:"max=1000"`
	CustomerID string                 `json:"customerId" validate:"omitempty,max=64"`
	SessionID  string                 `json:"sessionId" validate:"omitempty,max=128"`
	Context    map[string]interface{} `json:"context"`
}

type ResponseData struct {
	Type         string                          `json:"type"`
	Prices       []forecast.PricePrediction      `json:"prices,omitempty"`
	Availability []forecast.AvailabilityForecast `json:"availability,omitempty"`
	Demand       []forecast.DemandForecast       `json:"demand,omitempty"`
	Trend        *forecast.TrendAnalysis         `json:"trend,omitempty"`
}

type ChatbotResponse struct {
	Response         string        `json:"response"`
	ResponseType     ResponseType  `json:"responseType"`
	ConfidenceLevel  float64       `json:"confidenceLevel"`
	Data             *ResponseData `json:"data,omitempty"`
	Suggestions      []string      `json:"suggestions"`
	ProcessingTimeMs int64         `json:"processingTimeMs"`
	Intent           nlp.Intent    `json:"intent,omitempty"`
	SessionID        string        `json:"sessionId,omitempty"`
	InteractionID    string        `json:"interactionId,omitempty"`
}

type FeedbackRequest struct {
	InteractionID string `json:"interactionId" validate:"required,max=64"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Comments      string `json:"comments" validate:"omitempty,max=2000"`
}

type FeedbackResponse struct {
	ID            string    `json:"id"`
	InteractionID string    `json:"interactionId"`
	Rating        int       `json:"rating"`
	Comments      string    `json:"comments,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type FeedbackListResponse struct {
	Feedback      []FeedbackResponse `json:"feedback"`
	Total         int                `json:"total"`
	AverageRating float64            `json:"averageRating"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type AnalyzeRequest struct {
	Text    string                 `json:"text" validate:"required,max=1000"`
	Context map[string]interface{} `json:"context"`
}

type AnalyzeResponse struct {
	CleanText string            `json:"cleanText"`
	Tokens    []string          `json:"tokens"`
	Intent    *nlp.IntentResult `json:"intent"`
	Entities  nlp.EntityBag     `json:"entities"`
}
