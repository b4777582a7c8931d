package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresClient struct {
	Pool *pgxpool.Pool
}

func NewPostgresClient(connString string) (*PostgresClient, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	// Pool configuration
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	client := &PostgresClient{Pool: pool}

	// Auto-migrate schema
	if err := client.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return client, nil
}

func (p *PostgresClient) Migrate() error {
	ctx := context.Background()

	// Users Table. The unique constraint on phone backs the idempotent
	// registration path (ON CONFLICT DO NOTHING).
	_, err := p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			phone VARCHAR(30) UNIQUE NOT NULL,
			name VARCHAR(200),
			bpjs_number VARCHAR(100),
			fktp_id INT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	// FKTP (clinic) Table. Seeded out of band; read-only here.
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS fktps (
			id SERIAL PRIMARY KEY,
			name VARCHAR(200),
			alamat VARCHAR(200),
			phone VARCHAR(30) UNIQUE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create fktps table: %w", err)
	}

	// Consultation Requests Table
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS requests (
			id SERIAL PRIMARY KEY,
			request_id VARCHAR(64) UNIQUE NOT NULL,
			user_id INT,
			fktp_id INT,
			patient_phone VARCHAR(30) NOT NULL,
			bpjs_number VARCHAR(100),
			message TEXT,
			status VARCHAR(20) DEFAULT 'pending',
			raw_reply TEXT,
			formatted_reply TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create requests table: %w", err)
	}

	// Message Log Table (append-only)
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS messages (
			id SERIAL PRIMARY KEY,
			request_id VARCHAR(64),
			sender VARCHAR(30),
			phone VARCHAR(30),
			message TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create messages table: %w", err)
	}

	_, err = p.Pool.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_requests_request_id ON requests (request_id)")
	if err != nil {
		return fmt.Errorf("create requests index: %w", err)
	}
	_, err = p.Pool.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_messages_request_id ON messages (request_id)")
	if err != nil {
		return fmt.Errorf("create messages index: %w", err)
	}

	return nil
}

func (p *PostgresClient) Close() {
	p.Pool.Close()
}
