package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"HotelGolang/internal/config"
	"HotelGolang/pkg/log"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatal(log.Fields{"error": err.Error()}, "Error loading .env file")
	}

	logger := log.NewLogger()

	chatbotCfg, err := config.LoadChatbotConfig(os.Getenv("CHATBOT_CONFIG_FILE"))
	if err != nil {
		logger.Fatalf("Error loading chatbot config: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithChatbotConfig(chatbotCfg),
		config.WithDatabase(),
		config.WithUtils(),
		config.WithMiddleware(),
		config.WithForecastEngine(),
		config.WithSessionStore(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	server.StartBackground(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	cancel()
	if err := server.Shutdown(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
