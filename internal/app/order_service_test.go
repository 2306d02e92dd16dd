package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/denbilyk22/Orders/internal/clock"
	"github.com/denbilyk22/Orders/internal/delay"
	"github.com/denbilyk22/Orders/internal/domain"
)

func TestOrderService_Create(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)
	end := now.Add(2 * time.Hour)

	newInput := func(supplier, consumer domain.Client, price int64) CreateOrderInput {
		return CreateOrderInput{
			Name:                "Order X",
			Price:               decimal.NewFromInt(price),
			StartProcessingTime: start,
			EndProcessingTime:   end,
			SupplierID:          supplier.ID,
			ConsumerID:          consumer.ID,
		}
	}

	supplier := domain.Client{ID: uuid.New(), Name: "Acme Corp", Active: true}
	consumer := domain.Client{ID: uuid.New(), Name: "Globex", Active: true}

	newService := func(repo *fakeOrderRepo) *OrderService {
		return NewOrderService(repo, clock.NewFixed(now), delay.NewFixed(0))
	}

	t.Run("creates order with paired ledger entries", func(t *testing.T) {
		repo := newFakeOrderRepo(supplier, consumer)
		svc := newService(repo)

		res, err := svc.Create(context.Background(), newInput(supplier, consumer, 100))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Order.ID == uuid.Nil {
			t.Fatalf("expected order ID to be set")
		}
		if res.Supplier.ID != supplier.ID || res.Consumer.ID != consumer.ID {
			t.Fatalf("expected materialized supplier and consumer")
		}
		if !res.Order.CreatedAt.Equal(now) {
			t.Fatalf("expected created at %v, got %v", now, res.Order.CreatedAt)
		}

		if len(repo.orders) != 1 {
			t.Fatalf("expected 1 order persisted, got %d", len(repo.orders))
		}
		if len(repo.changes) != 2 {
			t.Fatalf("expected 2 ledger entries, got %d", len(repo.changes))
		}

		sup, con := repo.changes[0], repo.changes[1]
		if !sup.Amount.Equal(decimal.NewFromInt(100)) || sup.ClientID != supplier.ID {
			t.Fatalf("unexpected supplier entry: %+v", sup)
		}
		if !con.Amount.Equal(decimal.NewFromInt(-100)) || con.ClientID != consumer.ID {
			t.Fatalf("unexpected consumer entry: %+v", con)
		}
		for _, change := range repo.changes {
			if change.ChangeType != domain.BalanceChangeOrderCreation {
				t.Fatalf("expected ORDER_CREATION entry, got %s", change.ChangeType)
			}
			if change.OrderID == nil || *change.OrderID != res.Order.ID {
				t.Fatalf("expected entry to reference order %s", res.Order.ID)
			}
		}
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		repo := newFakeOrderRepo(supplier, consumer)
		svc := newService(repo)

		for _, price := range []int64{0, -10} {
			_, err := svc.Create(context.Background(), newInput(supplier, consumer, price))
			if err != domain.ErrOrderPriceInvalid {
				t.Fatalf("price %d: expected ErrOrderPriceInvalid, got %v", price, err)
			}
		}
		if repo.txCalls != 0 {
			t.Fatalf("expected no transaction, got %d", repo.txCalls)
		}
	})

	t.Run("rejects start after end", func(t *testing.T) {
		repo := newFakeOrderRepo(supplier, consumer)
		svc := newService(repo)

		in := newInput(supplier, consumer, 10)
		in.StartProcessingTime = end
		in.EndProcessingTime = start

		_, err := svc.Create(context.Background(), in)
		if err != domain.ErrProcessingWindowInvalid {
			t.Fatalf("expected ErrProcessingWindowInvalid, got %v", err)
		}
	})

	t.Run("accepts equal start and end", func(t *testing.T) {
		repo := newFakeOrderRepo(supplier, consumer)
		svc := newService(repo)

		in := newInput(supplier, consumer, 10)
		in.EndProcessingTime = in.StartProcessingTime

		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("rejects same supplier and consumer", func(t *testing.T) {
		repo := newFakeOrderRepo(supplier, consumer)
		svc := newService(repo)

		_, err := svc.Create(context.Background(), newInput(supplier, supplier, 10))
		if err != domain.ErrSameSupplierConsumer {
			t.Fatalf("expected ErrSameSupplierConsumer, got %v", err)
		}
	})

	t.Run("rejects duplicate order triple regardless of price", func(t *testing.T) {
		repo := newFakeOrderRepo(supplier, consumer)
		svc := newService(repo)

		if _, err := svc.Create(context.Background(), newInput(supplier, consumer, 100)); err != nil {
			t.Fatalf("first create failed: %v", err)
		}
		_, err := svc.Create(context.Background(), newInput(supplier, consumer, 250))
		if err != domain.ErrSimilarOrderExists {
			t.Fatalf("expected ErrSimilarOrderExists, got %v", err)
		}
	})

	t.Run("missing client returns not found", func(t *testing.T) {
		repo := newFakeOrderRepo(supplier, consumer)
		svc := newService(repo)

		in := newInput(supplier, consumer, 10)
		in.ConsumerID = uuid.New()

		_, err := svc.Create(context.Background(), in)
		if err != domain.ErrClientNotFound {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("inactive client is rejected with its name", func(t *testing.T) {
		inactive := domain.Client{ID: uuid.New(), Name: "Initech", Active: false}
		repo := newFakeOrderRepo(supplier, inactive)
		svc := newService(repo)

		_, err := svc.Create(context.Background(), newInput(supplier, inactive, 10))
		var inactiveErr domain.ClientInactiveError
		if !errors.As(err, &inactiveErr) {
			t.Fatalf("expected ClientInactiveError, got %v", err)
		}
		if inactiveErr.Name != "Initech" {
			t.Fatalf("expected error to carry client name, got %q", inactiveErr.Name)
		}
	})

	t.Run("credit limit uses consumer balance before the order", func(t *testing.T) {
		repo := newFakeOrderRepo(supplier, consumer)
		repo.profits[consumer.ID] = decimal.NewFromInt(-995)
		svc := newService(repo)

		_, err := svc.Create(context.Background(), newInput(supplier, consumer, 10))
		if err != domain.ErrConsumerBalanceLimit {
			t.Fatalf("expected ErrConsumerBalanceLimit, got %v", err)
		}
		if len(repo.orders) != 0 || len(repo.changes) != 0 {
			t.Fatalf("expected no writes after rejection")
		}

		// Landing exactly on -1000 is allowed.
		if _, err := svc.Create(context.Background(), newInput(supplier, consumer, 5)); err != nil {
			t.Fatalf("expected no error at the limit, got %v", err)
		}
	})

	t.Run("interrupted delay surfaces as processing failure", func(t *testing.T) {
		repo := newFakeOrderRepo(supplier, consumer)
		svc := NewOrderService(repo, clock.NewFixed(now), canceledDelay{})

		_, err := svc.Create(context.Background(), newInput(supplier, consumer, 10))
		if err != domain.ErrOrderProcessing {
			t.Fatalf("expected ErrOrderProcessing, got %v", err)
		}
		if len(repo.orders) != 0 || len(repo.changes) != 0 {
			t.Fatalf("expected no writes after interrupted delay")
		}
	})

	t.Run("transaction deadline surfaces as processing failure", func(t *testing.T) {
		repo := newFakeOrderRepo(supplier, consumer)
		repo.txErr = fmt.Errorf("commit: %w", context.DeadlineExceeded)
		svc := newService(repo)

		_, err := svc.Create(context.Background(), newInput(supplier, consumer, 10))
		if err != domain.ErrOrderProcessing {
			t.Fatalf("expected ErrOrderProcessing, got %v", err)
		}
	})

	t.Run("ledger failure aborts the transaction", func(t *testing.T) {
		repo := newFakeOrderRepo(supplier, consumer)
		repo.changesErr = errors.New("insert failed")
		svc := newService(repo)

		_, err := svc.Create(context.Background(), newInput(supplier, consumer, 10))
		if err == nil {
			t.Fatalf("expected error")
		}
		if len(repo.orders) != 0 {
			t.Fatalf("expected order rolled back with ledger failure")
		}
	})
}

func TestOrderService_List(t *testing.T) {
	t.Parallel()

	supplier := domain.Client{ID: uuid.New(), Name: "Acme Corp", Active: true}
	consumer := domain.Client{ID: uuid.New(), Name: "Globex", Active: true}
	repo := newFakeOrderRepo(supplier, consumer)
	repo.listed = []domain.OrderDetails{{Order: domain.Order{ID: uuid.New()}}}
	repo.listedTotal = 11

	svc := NewOrderService(repo, clock.NewSystem(), delay.NewFixed(0))

	page, err := svc.List(context.Background(), domain.OrderFilter{}, domain.PageRequest{Page: 1, Size: 5})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if page.Page != 1 || page.Size != 5 {
		t.Fatalf("unexpected page envelope: %+v", page)
	}
	if page.TotalElements != 11 || page.TotalPages != 3 {
		t.Fatalf("expected totals 11/3, got %d/%d", page.TotalElements, page.TotalPages)
	}
	if len(page.Content) != 1 {
		t.Fatalf("expected 1 row, got %d", len(page.Content))
	}
}

type canceledDelay struct{}

func (canceledDelay) Wait(_ context.Context) error {
	return context.Canceled
}

type fakeOrderRepo struct {
	clients     map[uuid.UUID]domain.Client
	profits     map[uuid.UUID]decimal.Decimal
	orders      []domain.Order
	changes     []domain.BalanceChange
	listed      []domain.OrderDetails
	listedTotal int64
	changesErr  error
	txErr       error
	txCalls     int
}

func newFakeOrderRepo(clients ...domain.Client) *fakeOrderRepo {
	byID := make(map[uuid.UUID]domain.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}
	return &fakeOrderRepo{
		clients: byID,
		profits: make(map[uuid.UUID]decimal.Decimal),
	}
}

func (f *fakeOrderRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.txCalls++
	if f.txErr != nil {
		return f.txErr
	}
	before := len(f.orders)
	if err := fn(ctx); err != nil {
		// Roll back anything written inside the failed transaction.
		f.orders = f.orders[:before]
		return err
	}
	return nil
}

func (f *fakeOrderRepo) GetOrder(_ context.Context, id uuid.UUID) (domain.OrderDetails, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return domain.OrderDetails{
				Order:    o,
				Supplier: f.clients[o.SupplierID],
				Consumer: f.clients[o.ConsumerID],
			}, nil
		}
	}
	return domain.OrderDetails{}, domain.ErrOrderNotFound
}

func (f *fakeOrderRepo) SimilarOrderExists(_ context.Context, name string, supplierID, consumerID uuid.UUID) (bool, error) {
	for _, o := range f.orders {
		if o.Name == name && o.SupplierID == supplierID && o.ConsumerID == consumerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrderRepo) GetClient(_ context.Context, id uuid.UUID) (domain.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return domain.Client{}, domain.ErrClientNotFound
	}
	return c, nil
}

func (f *fakeOrderRepo) ClientProfit(_ context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	return f.profits[clientID], nil
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order domain.Order) error {
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderRepo) CreateBalanceChanges(_ context.Context, changes []domain.BalanceChange) error {
	if f.changesErr != nil {
		return f.changesErr
	}
	f.changes = append(f.changes, changes...)
	for _, change := range changes {
		f.profits[change.ClientID] = f.profits[change.ClientID].Add(change.Amount)
	}
	return nil
}

func (f *fakeOrderRepo) ListOrders(_ context.Context, _ domain.OrderFilter, _ domain.PageRequest) ([]domain.OrderDetails, int64, error) {
	return f.listed, f.listedTotal, nil
}
