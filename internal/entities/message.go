package entities

import "time"

// MessageLog is an append-only audit entry. Nothing in the service reads
// these back; they exist for operators.
type MessageLog struct {
	ID        int       `json:"id"`
	RequestID string    `json:"request_id"`
	Sender    string    `json:"sender"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

const SenderSystem = "system"
