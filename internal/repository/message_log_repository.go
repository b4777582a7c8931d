package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"sikes-relay/internal/entities"
)

// MessageLogRepository is append-only; nothing in the service reads logs
// back.
type MessageLogRepository struct {
	db *pgxpool.Pool
}

func NewMessageLogRepository(db *pgxpool.Pool) *MessageLogRepository {
	return &MessageLogRepository{db: db}
}

func (r *MessageLogRepository) Append(ctx context.Context, log *entities.MessageLog) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO messages (request_id, sender, phone, message) VALUES (NULLIF($1, ''), $2, NULLIF($3, ''), $4)",
		log.RequestID, log.Sender, log.Phone, log.Message)
	return err
}
