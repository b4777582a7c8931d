package usecases

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sikes-relay/internal/entities"
	"sikes-relay/internal/interfaces"
)

// ConsultationService orchestrates the consultation flow between patients
// and clinics: registration, clinic notification, reply storage and
// patient delivery.
type ConsultationService struct {
	Users     interfaces.UserStore
	FKTPs     interfaces.FKTPStore
	Requests  interfaces.RequestStore
	Logs      interfaces.MessageLogStore
	Messenger interfaces.Messenger
	Log       zerolog.Logger
}

func NewConsultationService(users interfaces.UserStore, fktps interfaces.FKTPStore,
	requests interfaces.RequestStore, logs interfaces.MessageLogStore,
	messenger interfaces.Messenger, log zerolog.Logger) *ConsultationService {
	return &ConsultationService{
		Users:     users,
		FKTPs:     fktps,
		Requests:  requests,
		Logs:      logs,
		Messenger: messenger,
		Log:       log.With().Str("component", "consultation").Logger(),
	}
}

// NewRequestID generates a consultation request token: "req_" plus 16 hex
// characters of a random UUID.
func NewRequestID() string {
	u := uuid.New()
	return "req_" + hex.EncodeToString(u[:])[:16]
}

type RegisterResult struct {
	Status string
	UserID int
}

// RegisterUser is idempotent on phone: a second registration for the same
// phone returns the original user id.
func (s *ConsultationService) RegisterUser(ctx context.Context, phone, name, bpjsNumber string, fktpID *int) (RegisterResult, error) {
	user := &entities.User{
		Phone:      entities.NormalizePhone(phone),
		Name:       name,
		BPJSNumber: bpjsNumber,
		FKTPID:     fktpID,
	}

	id, existed, err := s.Users.Register(ctx, user)
	if err != nil {
		return RegisterResult{}, err
	}
	if existed {
		return RegisterResult{Status: "already_registered", UserID: id}, nil
	}
	return RegisterResult{Status: "success", UserID: id}, nil
}

type NotifyInput struct {
	UserID       *int
	PatientPhone string
	BPJSNumber   string
	FKTPID       int
	Message      string
}

type NotifyResult struct {
	Status    string
	Reason    string
	RequestID string
}

// NotifyFKTP creates the consultation request, logs it, and sends a
// best-effort notification to the clinic. The request row and log entry
// persist even when the clinic is unknown or the send fails.
func (s *ConsultationService) NotifyFKTP(ctx context.Context, in NotifyInput) (NotifyResult, error) {
	rid := NewRequestID()
	fktpID := in.FKTPID

	req := &entities.ConsultationRequest{
		RequestID:    rid,
		UserID:       in.UserID,
		FKTPID:       &fktpID,
		PatientPhone: in.PatientPhone,
		BPJSNumber:   in.BPJSNumber,
		Message:      in.Message,
	}
	if err := s.Requests.Create(ctx, req); err != nil {
		return NotifyResult{}, err
	}

	if err := s.Logs.Append(ctx, &entities.MessageLog{
		RequestID: rid,
		Sender:    entities.SenderSystem,
		Message:   "notify_fktp:" + in.Message,
	}); err != nil {
		return NotifyResult{}, err
	}

	fktp, err := s.FKTPs.GetByID(ctx, in.FKTPID)
	if err != nil {
		return NotifyResult{}, err
	}
	if fktp == nil {
		return NotifyResult{Status: "failed", Reason: "fktp_not_found"}, nil
	}

	bpjs := in.BPJSNumber
	if bpjs == "" {
		bpjs = "-"
	}
	body := fmt.Sprintf("[REQUEST_ID:%s]\nPermintaan konsultasi pasien\nBPJS: %s\nPesan: %s",
		rid, bpjs, in.Message)

	if res := s.Messenger.SendMessage(ctx, fktp.Phone, body); !res.Delivered {
		s.Log.Warn().Str("request_id", rid).Str("reason", res.Reason).Msg("fktp notification not delivered")
	}

	return NotifyResult{Status: "sent", RequestID: rid}, nil
}

type StoreReplyResult struct {
	Status       string
	PatientPhone string
}

// StoreReply records the clinic's answer and flips the request to replied.
func (s *ConsultationService) StoreReply(ctx context.Context, requestID, rawReply, formattedReply string) (StoreReplyResult, error) {
	req, err := s.Requests.StoreReply(ctx, requestID, rawReply, formattedReply)
	if err != nil {
		return StoreReplyResult{}, err
	}
	if req == nil {
		return StoreReplyResult{Status: "not_found"}, nil
	}
	return StoreReplyResult{
		Status:       "stored",
		PatientPhone: entities.NormalizePhone(req.PatientPhone),
	}, nil
}

// SendToPatient relays a message to the patient and logs it. Delivery is
// best effort; the caller always gets a sent status.
func (s *ConsultationService) SendToPatient(ctx context.Context, patientPhone, message string) error {
	if res := s.Messenger.SendMessage(ctx, patientPhone, message); !res.Delivered {
		s.Log.Warn().Str("phone", patientPhone).Str("reason", res.Reason).Msg("patient message not delivered")
	}

	return s.Logs.Append(ctx, &entities.MessageLog{
		Sender:  entities.SenderSystem,
		Phone:   patientPhone,
		Message: "send_to_patient:" + message,
	})
}
