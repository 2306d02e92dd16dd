package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a trade between a supplier and a consumer. Orders are immutable
// once created; the triple (name, supplier, consumer) is unique.
type Order struct {
	ID                  uuid.UUID
	Name                string
	Price               decimal.Decimal
	StartProcessingTime time.Time
	EndProcessingTime   time.Time
	SupplierID          uuid.UUID
	ConsumerID          uuid.UUID
	CreatedAt           time.Time
}

// OrderDetails pairs an order with its resolved supplier and consumer,
// joined at query time.
type OrderDetails struct {
	Order    Order
	Supplier Client
	Consumer Client
}
