package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"sikes-relay/internal/usecases"
)

type webhookEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type webhookPayload struct {
	From string `json:"from"`
	Body string `json:"body"`
}

// HandleWebhook receives inbound gateway events. Non-message events are
// acknowledged and dropped; message events are relayed to the predictor
// and the reply sent back to the sender.
func (h *Handler) HandleWebhook(c *gin.Context) {
	var event webhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	if event.Event != "message" {
		c.String(http.StatusOK, "OK")
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil || payload.From == "" {
		c.JSON(http.StatusBadRequest, fieldErrors(errMissingParam("payload.from")))
		return
	}

	// Debug artifact: keep the last raw payload on disk.
	h.relay.DumpPayload(event.Payload)

	status := h.relay.HandleMessage(c.Request.Context(), payload.From, payload.Body)
	if status == usecases.RelayError {
		c.JSON(http.StatusOK, gin.H{"status": usecases.RelayError})
		return
	}

	c.String(http.StatusOK, "OK")
}
