package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/denbilyk22/Orders/internal/domain"
	"github.com/denbilyk22/Orders/internal/testutil"
)

func TestOrderRepository_Postgres(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)

	repo := NewOrderRepository(pool)

	newOrder := func(name string, price int64, supplierID, consumerID uuid.UUID) domain.Order {
		now := time.Now().UTC().Truncate(time.Microsecond)
		return domain.Order{
			ID:                  uuid.New(),
			Name:                name,
			Price:               decimal.NewFromInt(price),
			StartProcessingTime: now,
			EndProcessingTime:   now.Add(time.Hour),
			SupplierID:          supplierID,
			ConsumerID:          consumerID,
			CreatedAt:           now,
		}
	}

	t.Run("create order with paired ledger entries", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		supplierID := testutil.InsertClient(t, ctx, pool, "Acme Corp", "info@acme.test", true)
		consumerID := testutil.InsertClient(t, ctx, pool, "Globex", "info@globex.test", true)

		order := newOrder("Steel delivery", 100, supplierID, consumerID)
		err := repo.WithTx(ctx, func(ctx context.Context) error {
			if err := repo.CreateOrder(ctx, order); err != nil {
				return err
			}
			return repo.CreateBalanceChanges(ctx, []domain.BalanceChange{
				{ID: uuid.New(), Amount: order.Price, ChangeType: domain.BalanceChangeOrderCreation, ClientID: supplierID, OrderID: &order.ID, CreatedAt: order.CreatedAt},
				{ID: uuid.New(), Amount: order.Price.Neg(), ChangeType: domain.BalanceChangeOrderCreation, ClientID: consumerID, OrderID: &order.ID, CreatedAt: order.CreatedAt},
			})
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		details, err := repo.GetOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("get order: %v", err)
		}
		if details.Order.Name != "Steel delivery" || !details.Order.Price.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("unexpected order: %+v", details.Order)
		}
		if details.Supplier.Name != "Acme Corp" || details.Consumer.Name != "Globex" {
			t.Fatalf("unexpected parties: %s / %s", details.Supplier.Name, details.Consumer.Name)
		}
		if details.Order.SupplierID != supplierID || details.Order.ConsumerID != consumerID {
			t.Fatalf("unexpected party ids: %+v", details.Order)
		}

		if got := testutil.ClientProfit(t, ctx, pool, supplierID); !got.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("expected supplier profit 100, got %s", got)
		}
		if got := testutil.ClientProfit(t, ctx, pool, consumerID); !got.Equal(decimal.NewFromInt(-100)) {
			t.Fatalf("expected consumer profit -100, got %s", got)
		}
	})

	t.Run("failed transaction leaves no trace", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		supplierID := testutil.InsertClient(t, ctx, pool, "Acme Corp", "info@acme.test", true)
		consumerID := testutil.InsertClient(t, ctx, pool, "Globex", "info@globex.test", true)

		order := newOrder("Steel delivery", 100, supplierID, consumerID)
		boom := errors.New("boom")
		err := repo.WithTx(ctx, func(ctx context.Context) error {
			if err := repo.CreateOrder(ctx, order); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		if _, err := repo.GetOrder(ctx, order.ID); err != domain.ErrOrderNotFound {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("similar order detection", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		supplierID := testutil.InsertClient(t, ctx, pool, "Acme Corp", "info@acme.test", true)
		consumerID := testutil.InsertClient(t, ctx, pool, "Globex", "info@globex.test", true)
		testutil.InsertOrder(t, ctx, pool, "Steel delivery", decimal.NewFromInt(100), supplierID, consumerID)

		exists, err := repo.SimilarOrderExists(ctx, "Steel delivery", supplierID, consumerID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !exists {
			t.Fatalf("expected similar order to exist")
		}

		exists, err = repo.SimilarOrderExists(ctx, "Steel delivery", consumerID, supplierID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if exists {
			t.Fatalf("swapped parties must not count as similar")
		}

		dup := newOrder("Steel delivery", 250, supplierID, consumerID)
		if err := repo.CreateOrder(ctx, dup); err != domain.ErrSimilarOrderExists {
			t.Fatalf("expected ErrSimilarOrderExists, got %v", err)
		}
	})

	t.Run("order for missing client", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		supplierID := testutil.InsertClient(t, ctx, pool, "Acme Corp", "info@acme.test", true)

		order := newOrder("Steel delivery", 100, supplierID, uuid.New())
		if err := repo.CreateOrder(ctx, order); err != domain.ErrClientNotFound {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("profit of a client without entries is zero", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		clientID := testutil.InsertClient(t, ctx, pool, "Acme Corp", "info@acme.test", true)

		profit, err := repo.ClientProfit(ctx, clientID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !profit.IsZero() {
			t.Fatalf("expected zero profit, got %s", profit)
		}
	})

	t.Run("list orders filtered by party", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		acmeID := testutil.InsertClient(t, ctx, pool, "Acme Corp", "info@acme.test", true)
		globexID := testutil.InsertClient(t, ctx, pool, "Globex", "info@globex.test", true)
		initechID := testutil.InsertClient(t, ctx, pool, "Initech", "info@initech.test", true)

		testutil.InsertOrder(t, ctx, pool, "Steel delivery", decimal.NewFromInt(100), acmeID, globexID)
		testutil.InsertOrder(t, ctx, pool, "Coal delivery", decimal.NewFromInt(50), acmeID, initechID)
		testutil.InsertOrder(t, ctx, pool, "Ore delivery", decimal.NewFromInt(75), globexID, initechID)

		orders, total, err := repo.ListOrders(ctx, domain.OrderFilter{SupplierID: &acmeID}, domain.PageRequest{Size: 10})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if total != 2 || len(orders) != 2 {
			t.Fatalf("expected 2 orders for supplier, got total=%d len=%d", total, len(orders))
		}
		for _, o := range orders {
			if o.Supplier.ID != acmeID {
				t.Fatalf("unexpected supplier %s", o.Supplier.ID)
			}
		}

		orders, total, err = repo.ListOrders(ctx, domain.OrderFilter{SupplierID: &acmeID, ConsumerID: &initechID}, domain.PageRequest{Size: 10})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if total != 1 || len(orders) != 1 || orders[0].Order.Name != "Coal delivery" {
			t.Fatalf("expected the one matching order, got total=%d %+v", total, orders)
		}

		_, total, err = repo.ListOrders(ctx, domain.OrderFilter{}, domain.PageRequest{Size: 2})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if total != 3 {
			t.Fatalf("expected unfiltered total 3, got %d", total)
		}
	})
}
