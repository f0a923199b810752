package chatbotHandler

import (
	chatbotService "HotelGolang/internal/api/chatbot/service"
	"HotelGolang/internal/middleware"
	"HotelGolang/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ChatbotHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	chatbotService chatbotService.IChatbotService
	utils          utils.IUtils
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs chatbotService.IChatbotService,
	utils utils.IUtils,
) *ChatbotHandler {
	return &ChatbotHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		chatbotService: cs,
		utils:          utils,
	}
}

func (h *ChatbotHandler) Start(srv fiber.Router) {
	chatbot := srv.Group("/chatbot", h.middleware.NewRateLimiter)

	chatbot.Post("/query", h.HandleQuery)
	chatbot.Post("/feedback", h.SubmitFeedback)
	chatbot.Get("/suggestions", h.GetSuggestions)
	chatbot.Get("/sessions/:session_id", h.GetSession)

	admin := chatbot.Group("/admin", h.middleware.NewTokenMiddleware)
	admin.Post("/nlp/analyze", h.Analyze)
	admin.Get("/feedback", h.ListFeedback)
}
