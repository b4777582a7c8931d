package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sikes-relay/internal/entities"
)

type RequestRepository struct {
	db *pgxpool.Pool
}

func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{db: db}
}

const requestColumns = "id, request_id, user_id, fktp_id, patient_phone, " +
	"COALESCE(bpjs_number, ''), COALESCE(message, ''), status, " +
	"COALESCE(raw_reply, ''), COALESCE(formatted_reply, ''), created_at, updated_at"

func (r *RequestRepository) Create(ctx context.Context, req *entities.ConsultationRequest) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO requests (request_id, user_id, fktp_id, patient_phone, bpjs_number, message, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		req.RequestID, req.UserID, req.FKTPID, req.PatientPhone, req.BPJSNumber,
		req.Message, entities.RequestStatusPending).
		Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *RequestRepository) GetByRequestID(ctx context.Context, requestID string) (*entities.ConsultationRequest, error) {
	var req entities.ConsultationRequest
	err := r.db.QueryRow(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE request_id = $1",
		requestID).Scan(
		&req.ID, &req.RequestID, &req.UserID, &req.FKTPID, &req.PatientPhone,
		&req.BPJSNumber, &req.Message, &req.Status,
		&req.RawReply, &req.FormattedReply, &req.CreatedAt, &req.UpdatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// StoreReply sets the reply fields and flips the status to replied. Returns
// nil when the request id is unknown; no row is touched in that case.
func (r *RequestRepository) StoreReply(ctx context.Context, requestID, rawReply, formattedReply string) (*entities.ConsultationRequest, error) {
	var req entities.ConsultationRequest
	err := r.db.QueryRow(ctx,
		`UPDATE requests
		 SET raw_reply = $2,
		     formatted_reply = COALESCE(NULLIF($3, ''), formatted_reply),
		     status = $4,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE request_id = $1
		 RETURNING `+requestColumns,
		requestID, rawReply, formattedReply, entities.RequestStatusReplied).Scan(
		&req.ID, &req.RequestID, &req.UserID, &req.FKTPID, &req.PatientPhone,
		&req.BPJSNumber, &req.Message, &req.Status,
		&req.RawReply, &req.FormattedReply, &req.CreatedAt, &req.UpdatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}
