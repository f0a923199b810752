package config

import (
	"context"
	"fmt"
	"os"

	"HotelGolang/database/postgres"
	chatbotHandler "HotelGolang/internal/api/chatbot/handler"
	chatbotRepository "HotelGolang/internal/api/chatbot/repository"
	chatbotService "HotelGolang/internal/api/chatbot/service"
	predictionHandler "HotelGolang/internal/api/prediction/handler"
	predictionRepository "HotelGolang/internal/api/prediction/repository"
	predictionService "HotelGolang/internal/api/prediction/service"
	"HotelGolang/internal/middleware"
	"HotelGolang/pkg/conversation"
	"HotelGolang/pkg/forecast"
	"HotelGolang/pkg/nlp"
	redisPkg "HotelGolang/pkg/redis"
	"HotelGolang/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	chatbotCfg   *ChatbotConfig
	redisClient  *redis.Client
	sessionStore conversation.Store
	memoryStore  *conversation.MemoryStore
	forecaster   *forecast.Engine
	processor    nlp.INLPProcessor
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.chatbotCfg == nil {
		return nil, fmt.Errorf("chatbot config is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithChatbotConfig(cfg *ChatbotConfig) ServerOption {
	return func(s *Server) error {
		if cfg == nil {
			return fmt.Errorf("chatbot config is nil")
		}
		s.chatbotCfg = cfg
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.chatbotCfg == nil {
			return fmt.Errorf("chatbot config must be loaded before middleware")
		}
		s.middleware = middleware.New(
			s.log,
			middleware.WithRateLimit(s.chatbotCfg.RateLimit.RequestsPerSecond, s.chatbotCfg.RateLimit.Burst),
			middleware.WithUtils(s.utils),
		)
		return nil
	}
}

func WithForecastEngine() ServerOption {
	return func(s *Server) error {
		if s.chatbotCfg == nil {
			return fmt.Errorf("chatbot config must be loaded before the forecast engine")
		}
		s.forecaster = forecast.NewEngine(forecast.WithModelVersion(s.chatbotCfg.Forecast.ModelVersion))
		s.processor = nlp.NewProcessor()
		return nil
	}
}

// WithSessionStore builds the configured conversation store. A redis backend
// that cannot be reached falls back to the in-memory store.
func WithSessionStore() ServerOption {
	return func(s *Server) error {
		if s.log == nil || s.chatbotCfg == nil {
			return fmt.Errorf("logger and chatbot config must be initialized before the session store")
		}

		cfg := s.chatbotCfg.Session
		policy := []conversation.Option{
			conversation.WithTTL(cfg.TTL),
			conversation.WithMaxRecentQueries(cfg.MaxRecentQueries),
		}

		if cfg.Store == SessionStoreRedis {
			client, err := redisPkg.New(s.log)
			if err == nil {
				s.redisClient = client
				s.sessionStore = conversation.NewRedisStore(client, s.log, policy...)
				s.log.Info("Using redis conversation store")
				return nil
			}
			s.log.Warnf("Redis unavailable, falling back to in-memory conversation store: %v", err)
		}

		s.memoryStore = conversation.NewMemoryStore(
			policy,
			conversation.WithShards(cfg.Shards),
			conversation.WithMemoryLogger(s.log),
		)
		s.sessionStore = s.memoryStore
		s.log.Info("Using in-memory conversation store")
		return nil
	}
}

// StartBackground runs the session janitor until ctx is cancelled. Redis
// expires sessions on its own, so only the memory store needs sweeping.
func (s *Server) StartBackground(ctx context.Context) {
	if s.memoryStore != nil {
		s.memoryStore.StartJanitor(ctx, s.chatbotCfg.Session.JanitorInterval)
	}
}

func (s *Server) RegisterHandler() {
	// Prediction Domain
	predictionRepo := predictionRepository.New(s.db, s.log)
	predictionServices := predictionService.NewPredictionService(s.log, predictionRepo, s.forecaster, s.utils)
	predictionHandlers := predictionHandler.New(s.log, s.validator, s.middleware, predictionServices)

	// Chatbot Domain
	chatbotRepo := chatbotRepository.New(s.db, s.log)
	chatbotServices := chatbotService.NewChatbotService(
		s.log,
		chatbotRepo,
		s.processor,
		s.sessionStore,
		s.forecaster,
		predictionServices,
		s.utils,
		chatbotService.Settings{
			DefaultLeadDays:        s.chatbotCfg.Forecast.DefaultLeadDays,
			AvailabilityWindowDays: s.chatbotCfg.Forecast.AvailabilityWindowDays,
			TrendWindowDays:        s.chatbotCfg.Forecast.TrendWindowDays,
		},
	)
	chatbotHandlers := chatbotHandler.New(s.log, s.validator, s.middleware, chatbotServices, s.utils)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, predictionHandlers, chatbotHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() error {
	if err := s.engine.Shutdown(); err != nil {
		return err
	}
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
			"model":   s.forecaster.ModelVersion(),
		})
	})
}
