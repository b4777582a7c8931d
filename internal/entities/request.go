package entities

import "time"

const (
	RequestStatusPending = "pending"
	RequestStatusReplied = "replied"
)

// ConsultationRequest tracks one patient-to-clinic consultation end to end.
// Status transitions exactly once, pending -> replied, when the clinic
// reply is stored.
type ConsultationRequest struct {
	ID             int       `json:"id"`
	RequestID      string    `json:"request_id"`
	UserID         *int      `json:"user_id"`
	FKTPID         *int      `json:"fktp_id"`
	PatientPhone   string    `json:"patient_phone"`
	BPJSNumber     string    `json:"bpjs_number"`
	Message        string    `json:"message"`
	Status         string    `json:"status"`
	RawReply       string    `json:"raw_reply"`
	FormattedReply string    `json:"formatted_reply"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
