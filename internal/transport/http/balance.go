package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/denbilyk22/Orders/internal/domain"
)

// BalanceAPI is the minimal surface the reconciliation handlers need.
type BalanceAPI interface {
	RefreshProfitForAllClients(ctx context.Context) error
	RefreshProfitForClient(ctx context.Context, clientID uuid.UUID) error
}

// HandleBalanceRefresh serves /client-balance/refresh-all and
// /client-balance/{clientId}/refresh, both PUT.
func HandleBalanceRefresh(svc BalanceAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) == 2 && parts[0] == "client-balance" && parts[1] == "refresh-all" {
			if err := svc.RefreshProfitForAllClients(r.Context()); err != nil {
				writeServiceError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if len(parts) == 3 && parts[0] == "client-balance" && parts[2] == "refresh" {
			clientID, err := uuid.Parse(parts[1])
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
				return
			}
			if err := svc.RefreshProfitForClient(r.Context(), clientID); err != nil {
				writeServiceError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	}
}
