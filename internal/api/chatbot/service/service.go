package chatbotService

import (
	"context"
	"time"

	"HotelGolang/internal/api/chatbot"
	chatbotRepository "HotelGolang/internal/api/chatbot/repository"
	"HotelGolang/pkg/conversation"
	"HotelGolang/pkg/forecast"
	"HotelGolang/pkg/nlp"
	"HotelGolang/pkg/utils"

	"github.com/sirupsen/logrus"
)

type IChatbotService interface {
	// HandleQuery never fails: every problem is folded into the returned
	// response.
	HandleQuery(ctx context.Context, req chatbot.QueryRequest) chatbot.ChatbotResponse
	GetSession(ctx context.Context, sessionID string) (conversation.ConversationContext, error)
	GetSuggestions(ctx context.Context, sessionID string) chatbot.SuggestionsResponse
	SubmitFeedback(ctx context.Context, req chatbot.FeedbackRequest) (*chatbot.FeedbackResponse, error)
	ListFeedback(ctx context.Context, page, limit int) (*chatbot.FeedbackListResponse, error)
	Analyze(ctx context.Context, req chatbot.AnalyzeRequest) chatbot.AnalyzeResponse
}

// SnapshotLoader resolves the historical inputs a forecast run needs.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, roomTypes []string, start, end time.Time) (forecast.Snapshot, error)
}

type Settings struct {
	DefaultLeadDays        int
	AvailabilityWindowDays int
	TrendWindowDays        int
}

func DefaultSettings() Settings {
	return Settings{
		DefaultLeadDays:        7,
		AvailabilityWindowDays: 7,
		TrendWindowDays:        14,
	}
}

type chatbotService struct {
	log         *logrus.Logger
	chatbotRepo chatbotRepository.Repository
	processor   nlp.INLPProcessor
	store       conversation.Store
	engine      *forecast.Engine
	snapshots   SnapshotLoader
	utils       utils.IUtils
	settings    Settings
}

func NewChatbotService(
	log *logrus.Logger,
	chatbotRepo chatbotRepository.Repository,
	processor nlp.INLPProcessor,
	store conversation.Store,
	engine *forecast.Engine,
	snapshots SnapshotLoader,
	utils utils.IUtils,
	settings Settings,
) IChatbotService {
	defaults := DefaultSettings()
	if settings.DefaultLeadDays <= 0 {
		settings.DefaultLeadDays = defaults.DefaultLeadDays
	}
	if settings.AvailabilityWindowDays <= 0 {
		settings.AvailabilityWindowDays = defaults.AvailabilityWindowDays
	}
	if settings.TrendWindowDays <= 1 {
		settings.TrendWindowDays = defaults.TrendWindowDays
	}

	return &chatbotService{
		log:         log,
		chatbotRepo: chatbotRepo,
		processor:   processor,
		store:       store,
		engine:      engine,
		snapshots:   snapshots,
		utils:       utils,
		settings:    settings,
	}
}
