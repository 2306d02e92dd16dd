package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/denbilyk22/Orders/internal/domain"
)

const orderDetailColumns = `o.id, o.name, o.price, o.start_processing_time, o.end_processing_time, o.created_at,
	s.id, s.name, s.email, s.address, s.active, s.deactivation_date, s.created_at,
	cn.id, cn.name, cn.email, cn.address, cn.active, cn.deactivation_date, cn.created_at`

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *OrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (domain.OrderDetails, error) {
	query := "SELECT " + orderDetailColumns + `
FROM orders o
JOIN clients s ON s.id = o.supplier_id
JOIN clients cn ON cn.id = o.consumer_id
WHERE o.id = $1`

	details, err := scanOrderDetails(r.queryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.OrderDetails{}, domain.ErrOrderNotFound
		}
		return domain.OrderDetails{}, fmt.Errorf("get order: %w", err)
	}
	return details, nil
}

func (r *OrderRepository) SimilarOrderExists(ctx context.Context, name string, supplierID, consumerID uuid.UUID) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM orders o
	WHERE o.name = $1 AND o.supplier_id = $2 AND o.consumer_id = $3
)`

	var exists bool
	if err := r.queryRow(ctx, query, name, supplierID, consumerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check similar order: %w", err)
	}
	return exists, nil
}

func (r *OrderRepository) GetClient(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	const query = `
SELECT id, name, email, address, active, deactivation_date, created_at
FROM clients
WHERE id = $1`

	var c domain.Client
	err := r.queryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Address, &c.Active, &c.DeactivationDate, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Client{}, domain.ErrClientNotFound
		}
		return domain.Client{}, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *OrderRepository) ClientProfit(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(amount), 0)
FROM client_balance_changes
WHERE client_id = $1`

	var profit decimal.Decimal
	if err := r.queryRow(ctx, query, clientID).Scan(&profit); err != nil {
		return decimal.Zero, fmt.Errorf("client profit: %w", err)
	}
	return profit, nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	const stmt = `
INSERT INTO orders (id, name, price, start_processing_time, end_processing_time, supplier_id, consumer_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		order.ID,
		order.Name,
		order.Price,
		order.StartProcessingTime,
		order.EndProcessingTime,
		order.SupplierID,
		order.ConsumerID,
		order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSimilarOrderExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrClientNotFound
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) CreateBalanceChanges(ctx context.Context, changes []domain.BalanceChange) error {
	const stmt = `
INSERT INTO client_balance_changes (id, amount, change_type, client_id, order_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	for _, change := range changes {
		_, err := r.exec(ctx, stmt,
			change.ID,
			change.Amount,
			change.ChangeType,
			change.ClientID,
			change.OrderID,
			change.CreatedAt,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrClientNotFound
			}
			return fmt.Errorf("create balance change: %w", err)
		}
	}
	return nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter, page domain.PageRequest) ([]domain.OrderDetails, int64, error) {
	listSQL, countSQL, listArgs, countArgs := buildOrderListQuery(filter, page)

	var total int64
	if err := r.queryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	rows, err := r.query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.OrderDetails
	for rows.Next() {
		details, err := scanOrderDetails(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, details)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", rows.Err())
	}
	return orders, total, nil
}

func scanOrderDetails(row pgx.Row) (domain.OrderDetails, error) {
	var d domain.OrderDetails
	err := row.Scan(
		&d.Order.ID, &d.Order.Name, &d.Order.Price,
		&d.Order.StartProcessingTime, &d.Order.EndProcessingTime, &d.Order.CreatedAt,
		&d.Supplier.ID, &d.Supplier.Name, &d.Supplier.Email, &d.Supplier.Address,
		&d.Supplier.Active, &d.Supplier.DeactivationDate, &d.Supplier.CreatedAt,
		&d.Consumer.ID, &d.Consumer.Name, &d.Consumer.Email, &d.Consumer.Address,
		&d.Consumer.Active, &d.Consumer.DeactivationDate, &d.Consumer.CreatedAt,
	)
	if err != nil {
		return domain.OrderDetails{}, err
	}
	d.Order.SupplierID = d.Supplier.ID
	d.Order.ConsumerID = d.Consumer.ID
	return d, nil
}

func (r *OrderRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *OrderRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *OrderRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
