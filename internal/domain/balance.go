package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BalanceChangeType string

const (
	BalanceChangeOrderCreation BalanceChangeType = "ORDER_CREATION"
	BalanceChangeAdjustment    BalanceChangeType = "ADJUSTMENT"
)

// BalanceChange is a signed, append-only ledger entry. A client's profit is
// the sum of its entries; it is derived, never stored.
type BalanceChange struct {
	ID         uuid.UUID
	Amount     decimal.Decimal
	ChangeType BalanceChangeType
	ClientID   uuid.UUID
	OrderID    *uuid.UUID
	CreatedAt  time.Time
}
