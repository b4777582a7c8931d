package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sikes-relay/internal/entities"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	var user entities.User
	err := r.db.QueryRow(ctx,
		"SELECT id, phone, COALESCE(name, ''), COALESCE(bpjs_number, ''), fktp_id, created_at FROM users WHERE phone = $1",
		phone).Scan(&user.ID, &user.Phone, &user.Name, &user.BPJSNumber, &user.FKTPID, &user.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Register inserts the user unless the phone is already taken. The unique
// constraint closes the race between two concurrent registrations: exactly
// one insert wins and the loser reads the winner's id.
func (r *UserRepository) Register(ctx context.Context, user *entities.User) (int, bool, error) {
	var id int
	err := r.db.QueryRow(ctx,
		"INSERT INTO users (phone, name, bpjs_number, fktp_id) VALUES ($1, $2, $3, $4) ON CONFLICT (phone) DO NOTHING RETURNING id",
		user.Phone, user.Name, user.BPJSNumber, user.FKTPID).Scan(&id)

	if err == nil {
		return id, false, nil
	}
	if err != pgx.ErrNoRows {
		return 0, false, err
	}

	// Conflict: the phone already exists.
	existing, err := r.GetByPhone(ctx, user.Phone)
	if err != nil {
		return 0, false, err
	}
	return existing.ID, true, nil
}
