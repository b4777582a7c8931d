package usecases

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"sikes-relay/internal/entities"
	"sikes-relay/internal/interfaces"
)

// BusyReply is sent to the patient when the predictor is unavailable.
const BusyReply = "⚠ Sistem sedang sibuk, silakan coba lagi nanti."

// Relay outcome statuses reported to the webhook caller.
const (
	RelayOK    = "ok"
	RelayError = "flowise_error"
)

// RelayService handles one inbound chat message: dump the raw payload for
// debugging, ask the predictor, and send the reply back through the
// gateway.
type RelayService struct {
	Predictor interfaces.Predictor
	Messenger interfaces.Messenger
	DumpDir   string
	Log       zerolog.Logger

	now func() time.Time
}

func NewRelayService(predictor interfaces.Predictor, messenger interfaces.Messenger,
	dumpDir string, log zerolog.Logger) *RelayService {
	return &RelayService{
		Predictor: predictor,
		Messenger: messenger,
		DumpDir:   dumpDir,
		Log:       log.With().Str("component", "relay").Logger(),
		now:       time.Now,
	}
}

// DumpPayload writes the raw webhook payload to disk. Debug artifact only;
// failures are logged and ignored.
func (s *RelayService) DumpPayload(raw []byte) {
	path := filepath.Join(s.DumpDir, "last_waha_payload.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		s.Log.Warn().Err(err).Str("path", path).Msg("payload dump failed")
	}
}

// HandleMessage relays one inbound message. Predictor failures degrade to
// an apology sent back to the patient; the gateway send itself stays best
// effort.
func (s *RelayService) HandleMessage(ctx context.Context, from, body string) string {
	sessionID := entities.SessionKey(from, s.now())

	result, err := s.Predictor.Predict(ctx, sessionID, body, map[string]string{
		"user_phone":  from,
		"raw_message": body,
	})
	if err != nil {
		s.Log.Error().Err(err).Str("from", from).Msg("prediction failed")
		s.Messenger.SendMessage(ctx, from, BusyReply)
		return RelayError
	}

	s.Messenger.SendMessage(ctx, from, result.ReplyText())
	return RelayOK
}
