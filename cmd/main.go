package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"sikes-relay/internal/config"
	"sikes-relay/internal/infrastructure"
	"sikes-relay/internal/interfaces/http"
	"sikes-relay/internal/repository"
	"sikes-relay/internal/usecases"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Connect to PostgreSQL
	pgClient, err := infrastructure.NewPostgresClient(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	// Initialize Repositories
	userRepo := repository.NewUserRepository(pgClient.Pool)
	fktpRepo := repository.NewFKTPRepository(pgClient.Pool)
	requestRepo := repository.NewRequestRepository(pgClient.Pool)
	logRepo := repository.NewMessageLogRepository(pgClient.Pool)

	// Outbound clients
	gateway := infrastructure.NewGatewayClient(cfg.GatewaySendURL, cfg.GatewayAPIKey, cfg.GatewaySession, logger)
	predictor := infrastructure.NewPredictorClient(cfg.PredictionURL, cfg.PredictTimeout)

	// Services
	consultation := usecases.NewConsultationService(userRepo, fktpRepo, requestRepo, logRepo, gateway, logger)
	relay := usecases.NewRelayService(predictor, gateway, cfg.PayloadDumpDir, logger)

	// Setup HTTP server
	r := gin.Default()
	handler := http.NewHandler(consultation, relay, userRepo, fktpRepo, requestRepo, cfg)
	http.SetupRoutes(r, handler, http.NewMiddleware())

	logger.Info().Str("addr", cfg.ListenAddr).Msg("starting server")
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
