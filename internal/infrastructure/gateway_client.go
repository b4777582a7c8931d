package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"sikes-relay/internal/entities"
)

const gatewaySendTimeout = 10 * time.Second

// GatewayClient talks to the WAHA sendText endpoint. Sends are fire and
// forget: the result reports the outcome but no caller treats a failed
// delivery as an error.
type GatewayClient struct {
	sendURL string
	apiKey  string
	session string
	http    *http.Client
	log     zerolog.Logger
}

func NewGatewayClient(sendURL, apiKey, session string, log zerolog.Logger) *GatewayClient {
	return &GatewayClient{
		sendURL: sendURL,
		apiKey:  apiKey,
		session: session,
		http:    &http.Client{Timeout: gatewaySendTimeout},
		log:     log.With().Str("component", "gateway").Logger(),
	}
}

type sendTextRequest struct {
	Session string `json:"session"`
	ChatID  string `json:"chatId"`
	Text    string `json:"text"`
}

func (g *GatewayClient) SendMessage(ctx context.Context, chatID, text string) entities.DeliveryResult {
	body, err := json.Marshal(sendTextRequest{
		Session: g.session,
		ChatID:  chatID,
		Text:    text,
	})
	if err != nil {
		return g.failed(chatID, fmt.Sprintf("encode payload: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.sendURL, bytes.NewReader(body))
	if err != nil {
		return g.failed(chatID, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return g.failed(chatID, fmt.Sprintf("send: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return g.failed(chatID, fmt.Sprintf("gateway returned %d", resp.StatusCode))
	}

	return entities.Delivered()
}

func (g *GatewayClient) failed(chatID, reason string) entities.DeliveryResult {
	g.log.Warn().Str("chat_id", chatID).Str("reason", reason).Msg("send failed")
	return entities.DeliveryFailed(reason)
}
