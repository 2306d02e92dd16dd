package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BalanceRepository struct {
	pool *pgxpool.Pool
}

func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{pool: pool}
}

func (r *BalanceRepository) HasBalanceChanges(ctx context.Context, clientID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM client_balance_changes WHERE client_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, clientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check balance changes: %w", err)
	}
	return exists, nil
}

// RefreshProfitForAllClients appends one ADJUSTMENT entry per client holding
// entries, each offsetting that client's current sum. History stays intact;
// afterwards every affected client's profit is zero.
func (r *BalanceRepository) RefreshProfitForAllClients(ctx context.Context) error {
	const stmt = `
INSERT INTO client_balance_changes (client_id, amount, change_type)
SELECT client_id, -SUM(amount), 'ADJUSTMENT'
FROM client_balance_changes
GROUP BY client_id`

	if _, err := r.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("refresh profit for all clients: %w", err)
	}
	return nil
}

func (r *BalanceRepository) RefreshProfitForClient(ctx context.Context, clientID uuid.UUID) error {
	const stmt = `
INSERT INTO client_balance_changes (client_id, amount, change_type)
SELECT client_id, -SUM(amount), 'ADJUSTMENT'
FROM client_balance_changes
WHERE client_id = $1
GROUP BY client_id`

	if _, err := r.pool.Exec(ctx, stmt, clientID); err != nil {
		return fmt.Errorf("refresh profit for client: %w", err)
	}
	return nil
}
