package domain

import (
	"errors"
	"fmt"
)

var (
	ErrClientNotFound          = errors.New("client not found by id")
	ErrOrderNotFound           = errors.New("order not found by id")
	ErrClientEmailExists       = errors.New("client already exists")
	ErrSimilarOrderExists      = errors.New("similar order already exists")
	ErrOrderPriceInvalid       = errors.New("order price must be greater than 0")
	ErrProcessingWindowInvalid = errors.New("start processing time must be less than or equal to end processing time")
	ErrSameSupplierConsumer    = errors.New("order supplier and consumer must be not the same client")
	ErrConsumerBalanceLimit    = errors.New("consumer balance cannot be decreased to more than 1000")
	ErrProfitRangeInvalid      = errors.New("profit from must be greater than or equal to profit to")
	ErrOrderProcessing         = errors.New("order processing failed")
	ErrInvalidID               = errors.New("invalid id")
)

// ClientInactiveError names the inactive client that blocked an operation.
type ClientInactiveError struct {
	Name string
}

func (e ClientInactiveError) Error() string {
	return fmt.Sprintf("client '%s' is not active", e.Name)
}
