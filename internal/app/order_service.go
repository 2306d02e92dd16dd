package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/denbilyk22/Orders/internal/clock"
	"github.com/denbilyk22/Orders/internal/delay"
	"github.com/denbilyk22/Orders/internal/domain"
)

type OrderRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetOrder(ctx context.Context, id uuid.UUID) (domain.OrderDetails, error)
	SimilarOrderExists(ctx context.Context, name string, supplierID, consumerID uuid.UUID) (bool, error)
	GetClient(ctx context.Context, id uuid.UUID) (domain.Client, error)
	ClientProfit(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error)
	CreateOrder(ctx context.Context, order domain.Order) error
	CreateBalanceChanges(ctx context.Context, changes []domain.BalanceChange) error
	ListOrders(ctx context.Context, filter domain.OrderFilter, page domain.PageRequest) ([]domain.OrderDetails, int64, error)
}

// creditLimit is the floor a consumer's post-order balance may not cross.
var creditLimit = decimal.NewFromInt(-1000)

const createOrderTimeout = 15 * time.Second

type OrderService struct {
	repo  OrderRepository
	clock clock.Clock
	delay delay.Provider
}

func NewOrderService(repo OrderRepository, clk clock.Clock, dly delay.Provider) *OrderService {
	return &OrderService{
		repo:  repo,
		clock: clk,
		delay: dly,
	}
}

func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (domain.OrderDetails, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter, page domain.PageRequest) (domain.Page[domain.OrderDetails], error) {
	page = page.Normalize()
	orders, total, err := s.repo.ListOrders(ctx, filter, page)
	if err != nil {
		return domain.Page[domain.OrderDetails]{}, err
	}
	return domain.NewPage(orders, page, total), nil
}

type CreateOrderInput struct {
	Name                string
	Price               decimal.Decimal
	StartProcessingTime time.Time
	EndProcessingTime   time.Time
	SupplierID          uuid.UUID
	ConsumerID          uuid.UUID
}

// Create runs the whole order transaction: validation, credit-limit check,
// simulated processing delay, order insert and the paired double-entry
// ledger writes. Everything happens inside one transaction bounded by a
// hard 15s deadline; nothing partial survives a failure.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (domain.OrderDetails, error) {
	if !in.Price.IsPositive() {
		return domain.OrderDetails{}, domain.ErrOrderPriceInvalid
	}
	if in.StartProcessingTime.After(in.EndProcessingTime) {
		return domain.OrderDetails{}, domain.ErrProcessingWindowInvalid
	}
	if in.SupplierID == in.ConsumerID {
		return domain.OrderDetails{}, domain.ErrSameSupplierConsumer
	}

	ctx, cancel := context.WithTimeout(ctx, createOrderTimeout)
	defer cancel()

	now := s.clock.Now()
	var result domain.OrderDetails

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		exists, err := s.repo.SimilarOrderExists(txCtx, in.Name, in.SupplierID, in.ConsumerID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrSimilarOrderExists
		}

		supplier, err := s.repo.GetClient(txCtx, in.SupplierID)
		if err != nil {
			return err
		}
		consumer, err := s.repo.GetClient(txCtx, in.ConsumerID)
		if err != nil {
			return err
		}
		if !supplier.Active {
			return domain.ClientInactiveError{Name: supplier.Name}
		}
		if !consumer.Active {
			return domain.ClientInactiveError{Name: consumer.Name}
		}

		// The limit applies to the consumer's balance before this order
		// lands; landing exactly on -1000 is allowed. Two concurrent
		// creates for the same consumer can both pass this read-then-commit
		// check; isolation is left to the storage engine.
		profit, err := s.repo.ClientProfit(txCtx, consumer.ID)
		if err != nil {
			return err
		}
		if profit.Sub(in.Price).LessThan(creditLimit) {
			return domain.ErrConsumerBalanceLimit
		}

		// Simulated downstream processing latency. An interrupted wait is
		// terminal for the request, never retried.
		if err := s.delay.Wait(txCtx); err != nil {
			return domain.ErrOrderProcessing
		}

		order := domain.Order{
			ID:                  newID(),
			Name:                in.Name,
			Price:               in.Price,
			StartProcessingTime: in.StartProcessingTime,
			EndProcessingTime:   in.EndProcessingTime,
			SupplierID:          supplier.ID,
			ConsumerID:          consumer.ID,
			CreatedAt:           now,
		}
		if err := s.repo.CreateOrder(txCtx, order); err != nil {
			return err
		}

		orderID := order.ID
		changes := []domain.BalanceChange{
			{
				ID:         newID(),
				Amount:     in.Price,
				ChangeType: domain.BalanceChangeOrderCreation,
				ClientID:   supplier.ID,
				OrderID:    &orderID,
				CreatedAt:  now,
			},
			{
				ID:         newID(),
				Amount:     in.Price.Neg(),
				ChangeType: domain.BalanceChangeOrderCreation,
				ClientID:   consumer.ID,
				OrderID:    &orderID,
				CreatedAt:  now,
			},
		}
		if err := s.repo.CreateBalanceChanges(txCtx, changes); err != nil {
			return err
		}

		result = domain.OrderDetails{Order: order, Supplier: supplier, Consumer: consumer}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.OrderDetails{}, domain.ErrOrderProcessing
		}
		return domain.OrderDetails{}, err
	}
	return result, nil
}
