package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once at startup and handed to each component. No global
// state; components receive the fields they need.
type Config struct {
	DatabaseURL    string
	PredictionURL  string
	GatewaySendURL string
	GatewayAPIKey  string
	GatewaySession string
	PredictTimeout time.Duration
	ListenAddr     string
	PayloadDumpDir string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		PredictionURL:  getEnv("FLOWISE_PREDICTION_URL", "http://localhost:3000/api/v1/prediction/default"),
		GatewaySendURL: getEnv("WAHA_SEND_URL", "http://localhost:3001/api/sendText"),
		GatewayAPIKey:  os.Getenv("WAHA_API_KEY"),
		GatewaySession: getEnv("WAHA_SESSION", "default"),
		PredictTimeout: 60 * time.Second,
		ListenAddr:     getEnv("LISTEN_ADDR", "0.0.0.0:8000"),
		PayloadDumpDir: getEnv("PAYLOAD_DUMP_DIR", "."),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if v := os.Getenv("FLOWISE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v + "s")
		if err != nil {
			return nil, fmt.Errorf("invalid FLOWISE_TIMEOUT %q: %w", v, err)
		}
		cfg.PredictTimeout = d
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
