package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/denbilyk22/Orders/internal/app"
	"github.com/denbilyk22/Orders/internal/domain"
)

// OrderAPI is the minimal surface the order handlers need.
type OrderAPI interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.OrderDetails, error)
	List(ctx context.Context, filter domain.OrderFilter, page domain.PageRequest) (domain.Page[domain.OrderDetails], error)
	Create(ctx context.Context, in app.CreateOrderInput) (domain.OrderDetails, error)
}

// HandleOrders serves the /orders collection: POST creates, GET lists.
func HandleOrders(svc OrderAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			createOrder(svc, w, r)
		case http.MethodGet:
			listOrders(svc, w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleOrderByID serves /orders/{id}.
func HandleOrderByID(svc OrderAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 2 || parts[0] != "orders" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		id, err := uuid.Parse(parts[1])
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		details, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(toOrderResponse(details))
	}
}

func createOrder(svc OrderAPI, w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, codeMissingRequiredField, err.Error())
		return
	}

	details, err := svc.Create(r.Context(), app.CreateOrderInput{
		Name:                req.Name,
		Price:               req.Price,
		StartProcessingTime: req.StartProcessingTime,
		EndProcessingTime:   req.EndProcessingTime,
		SupplierID:          req.SupplierID,
		ConsumerID:          req.ConsumerID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toOrderResponse(details))
}

func listOrders(svc OrderAPI, w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	supplierID, err := parseOptionalUUID(q, "supplierId")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidID, "invalid supplierId")
		return
	}
	consumerID, err := parseOptionalUUID(q, "consumerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidID, "invalid consumerId")
		return
	}

	page, err := svc.List(r.Context(), domain.OrderFilter{
		SupplierID: supplierID,
		ConsumerID: consumerID,
	}, parsePageRequest(q))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(toPageResponse(page, toOrderResponse))
}

type createOrderRequest struct {
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	StartProcessingTime time.Time       `json:"startProcessingTime"`
	EndProcessingTime   time.Time       `json:"endProcessingTime"`
	SupplierID          uuid.UUID       `json:"supplierId"`
	ConsumerID          uuid.UUID       `json:"consumerId"`
}

func (r createOrderRequest) validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.StartProcessingTime.IsZero() || r.EndProcessingTime.IsZero() {
		return errors.New("startProcessingTime and endProcessingTime are required")
	}
	if r.SupplierID == uuid.Nil || r.ConsumerID == uuid.Nil {
		return errors.New("supplierId and consumerId are required")
	}
	return nil
}
