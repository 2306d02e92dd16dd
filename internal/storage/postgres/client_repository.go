package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/denbilyk22/Orders/internal/domain"
)

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

func (r *ClientRepository) GetClient(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	const query = `
SELECT id, name, email, address, active, deactivation_date, created_at
FROM clients
WHERE id = $1`

	var c domain.Client
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Address, &c.Active, &c.DeactivationDate, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Client{}, domain.ErrClientNotFound
		}
		return domain.Client{}, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepository) ClientEmailExists(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check client email: %w", err)
	}
	return exists, nil
}

func (r *ClientRepository) CreateClient(ctx context.Context, client domain.Client) error {
	const stmt = `
INSERT INTO clients (id, name, email, address, active, deactivation_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, stmt,
		client.ID,
		client.Name,
		client.Email,
		client.Address,
		client.Active,
		client.DeactivationDate,
		client.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrClientEmailExists
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (r *ClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	const stmt = `
UPDATE clients
SET name = $2, email = $3, address = $4, active = $5, deactivation_date = $6
WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt,
		client.ID,
		client.Name,
		client.Email,
		client.Address,
		client.Active,
		client.DeactivationDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrClientEmailExists
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) ListClients(ctx context.Context, filter domain.ClientFilter, page domain.PageRequest) ([]domain.Client, int64, error) {
	listSQL, countSQL, listArgs, countArgs := buildClientListQuery(filter, page)

	var total int64
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	rows, err := r.pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Address, &c.Active, &c.DeactivationDate, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate clients: %w", rows.Err())
	}
	return clients, total, nil
}
