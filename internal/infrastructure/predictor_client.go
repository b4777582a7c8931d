package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sikes-relay/internal/entities"
)

// PredictorClient posts questions to the Flowise prediction endpoint.
// Unlike gateway sends, prediction failures are returned to the caller so
// the webhook can degrade gracefully.
type PredictorClient struct {
	predictURL string
	http       *http.Client
}

func NewPredictorClient(predictURL string, timeout time.Duration) *PredictorClient {
	return &PredictorClient{
		predictURL: predictURL,
		http:       &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Question       string         `json:"question"`
	OverrideConfig overrideConfig `json:"overrideConfig"`
}

type overrideConfig struct {
	SessionID       string            `json:"sessionId"`
	CustomVariables map[string]string `json:"customVariables"`
}

func (p *PredictorClient) Predict(ctx context.Context, sessionID, question string, contextVars map[string]string) (entities.PredictionResponse, error) {
	if contextVars == nil {
		contextVars = map[string]string{}
	}

	body, err := json.Marshal(predictRequest{
		Question: question,
		OverrideConfig: overrideConfig{
			SessionID:       sessionID,
			CustomVariables: contextVars,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode predict payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.predictURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predict call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("predictor returned %d", resp.StatusCode)
	}

	var result entities.PredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}

	return result, nil
}
