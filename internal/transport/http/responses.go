package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/denbilyk22/Orders/internal/domain"
)

type clientResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Address          string     `json:"address"`
	Active           bool       `json:"active"`
	DeactivationDate *time.Time `json:"deactivationDate,omitempty"`
	CreatedDate      time.Time  `json:"createdDate"`
}

func toClientResponse(c domain.Client) clientResponse {
	return clientResponse{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		Address:          c.Address,
		Active:           c.Active,
		DeactivationDate: c.DeactivationDate,
		CreatedDate:      c.CreatedAt,
	}
}

type orderResponse struct {
	ID                  uuid.UUID       `json:"id"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	StartProcessingTime time.Time       `json:"startProcessingTime"`
	EndProcessingTime   time.Time       `json:"endProcessingTime"`
	Supplier            clientResponse  `json:"supplier"`
	Consumer            clientResponse  `json:"consumer"`
	CreatedDate         time.Time       `json:"createdDate"`
}

func toOrderResponse(d domain.OrderDetails) orderResponse {
	return orderResponse{
		ID:                  d.Order.ID,
		Name:                d.Order.Name,
		Price:               d.Order.Price,
		StartProcessingTime: d.Order.StartProcessingTime,
		EndProcessingTime:   d.Order.EndProcessingTime,
		Supplier:            toClientResponse(d.Supplier),
		Consumer:            toClientResponse(d.Consumer),
		CreatedDate:         d.Order.CreatedAt,
	}
}

type pageResponse[T any] struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Content       []T   `json:"content"`
}

func toPageResponse[T, U any](page domain.Page[U], convert func(U) T) pageResponse[T] {
	content := make([]T, 0, len(page.Content))
	for _, item := range page.Content {
		content = append(content, convert(item))
	}
	return pageResponse[T]{
		Page:          page.Page,
		Size:          page.Size,
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
		Content:       content,
	}
}
