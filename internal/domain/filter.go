package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientFilter holds the optional listing constraints for clients. The
// profit bounds are inclusive and apply to the client's ledger sum, so a
// client with no ledger entries is evaluated with a sum of zero.
type ClientFilter struct {
	Search     string
	ProfitFrom *decimal.Decimal
	ProfitTo   *decimal.Decimal
}

// OrderFilter holds the optional listing constraints for orders. Present ids
// are matched exactly and AND-combined.
type OrderFilter struct {
	SupplierID *uuid.UUID
	ConsumerID *uuid.UUID
}
