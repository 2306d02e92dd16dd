package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/denbilyk22/Orders/internal/domain"
)

const (
	codeMethodNotAllowed      = "method_not_allowed"
	codeNotFound              = "not_found"
	codeInvalidRequestBody    = "invalid_request_body"
	codeMissingRequiredField  = "missing_required_field"
	codeInvalidID             = "invalid_id"
	codeInvalidPrice          = "invalid_price"
	codeInvalidWindow         = "invalid_processing_window"
	codeSameSupplierConsumer  = "same_supplier_consumer"
	codeInvalidProfitRange    = "invalid_profit_range"
	codeClientNotFound        = "client_not_found"
	codeOrderNotFound         = "order_not_found"
	codeClientExists          = "client_already_exists"
	codeSimilarOrderExists    = "similar_order_exists"
	codeClientInactive        = "client_inactive"
	codeConsumerBalanceLimit  = "consumer_balance_limit"
	codeOrderProcessingFailed = "order_processing_failed"
	codeForbidden             = "forbidden"
	codeInternalError         = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeServiceError maps service errors onto the JSON error envelope.
// Business-rule failures carry their specific reason; anything unexpected
// becomes a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var inactive domain.ClientInactiveError
	if errors.As(err, &inactive) {
		writeError(w, http.StatusConflict, codeClientInactive, inactive.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrOrderPriceInvalid):
		writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
	case errors.Is(err, domain.ErrProcessingWindowInvalid):
		writeError(w, http.StatusBadRequest, codeInvalidWindow, err.Error())
	case errors.Is(err, domain.ErrSameSupplierConsumer):
		writeError(w, http.StatusBadRequest, codeSameSupplierConsumer, err.Error())
	case errors.Is(err, domain.ErrProfitRangeInvalid):
		writeError(w, http.StatusBadRequest, codeInvalidProfitRange, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrClientNotFound):
		writeError(w, http.StatusNotFound, codeClientNotFound, err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, codeOrderNotFound, err.Error())
	case errors.Is(err, domain.ErrClientEmailExists):
		writeError(w, http.StatusConflict, codeClientExists, err.Error())
	case errors.Is(err, domain.ErrSimilarOrderExists):
		writeError(w, http.StatusConflict, codeSimilarOrderExists, err.Error())
	case errors.Is(err, domain.ErrConsumerBalanceLimit):
		writeError(w, http.StatusConflict, codeConsumerBalanceLimit, err.Error())
	case errors.Is(err, domain.ErrOrderProcessing):
		writeError(w, http.StatusInternalServerError, codeOrderProcessingFailed, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
