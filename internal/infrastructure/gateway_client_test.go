package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestGatewayClient_SendMessage_Delivered(t *testing.T) {
	var gotKey string
	var gotBody sendTextRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewGatewayClient(srv.URL, "secret", "default", zerolog.Nop())
	res := client.SendMessage(context.Background(), "628@lid", "halo")

	if !res.Delivered {
		t.Fatalf("expected delivered, got failure: %s", res.Reason)
	}
	if gotKey != "secret" {
		t.Errorf("expected x-api-key header, got %q", gotKey)
	}
	if gotBody.Session != "default" || gotBody.ChatID != "628@lid" || gotBody.Text != "halo" {
		t.Errorf("unexpected payload: %+v", gotBody)
	}
}

func TestGatewayClient_SendMessage_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewGatewayClient(srv.URL, "secret", "default", zerolog.Nop())
	res := client.SendMessage(context.Background(), "628@lid", "halo")

	if res.Delivered {
		t.Fatal("expected delivery failure on 502")
	}
	if res.Reason == "" {
		t.Error("expected a failure reason")
	}
}

func TestGatewayClient_SendMessage_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Force connection refused

	client := NewGatewayClient(srv.URL, "secret", "default", zerolog.Nop())
	res := client.SendMessage(context.Background(), "628@lid", "halo")

	if res.Delivered {
		t.Fatal("expected delivery failure on network error")
	}
}
