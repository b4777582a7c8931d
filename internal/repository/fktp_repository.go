package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sikes-relay/internal/entities"
)

type FKTPRepository struct {
	db *pgxpool.Pool
}

func NewFKTPRepository(db *pgxpool.Pool) *FKTPRepository {
	return &FKTPRepository{db: db}
}

const fktpColumns = "id, COALESCE(name, ''), COALESCE(alamat, ''), phone, created_at"

func (r *FKTPRepository) scanOne(row pgx.Row) (*entities.FKTP, error) {
	var f entities.FKTP
	err := row.Scan(&f.ID, &f.Name, &f.Alamat, &f.Phone, &f.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FKTPRepository) GetByID(ctx context.Context, id int) (*entities.FKTP, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		"SELECT "+fktpColumns+" FROM fktps WHERE id = $1", id))
}

func (r *FKTPRepository) GetByPhone(ctx context.Context, phone string) (*entities.FKTP, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		"SELECT "+fktpColumns+" FROM fktps WHERE phone = $1", phone))
}

// SearchByName returns the first clinic whose name contains the query,
// case-insensitive.
func (r *FKTPRepository) SearchByName(ctx context.Context, name string) (*entities.FKTP, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		"SELECT "+fktpColumns+" FROM fktps WHERE name ILIKE '%' || $1 || '%' ORDER BY id LIMIT 1", name))
}

func (r *FKTPRepository) List(ctx context.Context) ([]entities.FKTP, error) {
	rows, err := r.db.Query(ctx, "SELECT "+fktpColumns+" FROM fktps ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fktps []entities.FKTP
	for rows.Next() {
		var f entities.FKTP
		if err := rows.Scan(&f.ID, &f.Name, &f.Alamat, &f.Phone, &f.CreatedAt); err != nil {
			return nil, err
		}
		fktps = append(fktps, f)
	}
	return fktps, rows.Err()
}
