package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/denbilyk22/Orders/internal/app"
	"github.com/denbilyk22/Orders/internal/domain"
)

// ClientAPI is the minimal surface the client handlers need.
type ClientAPI interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error)
	List(ctx context.Context, filter domain.ClientFilter, page domain.PageRequest) (domain.Page[domain.Client], error)
	Create(ctx context.Context, in app.ClientInput) (domain.Client, error)
	Update(ctx context.Context, id uuid.UUID, in app.ClientInput) (domain.Client, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Client, error)
}

// HandleClients serves the /clients collection: POST creates, GET lists.
func HandleClients(svc ClientAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			createClient(svc, w, r)
		case http.MethodGet:
			listClients(svc, w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleClientByID serves /clients/{id} (GET, PUT) and /clients/{id}/active (PUT).
func HandleClientByID(svc ClientAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 || len(parts) > 3 || parts[0] != "clients" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		id, err := uuid.Parse(parts[1])
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		if len(parts) == 3 {
			if parts[2] != "active" {
				writeError(w, http.StatusNotFound, codeNotFound, "not found")
				return
			}
			if r.Method != http.MethodPut {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			setClientActive(svc, w, r, id)
			return
		}

		switch r.Method {
		case http.MethodGet:
			getClient(svc, w, r, id)
		case http.MethodPut:
			updateClient(svc, w, r, id)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func getClient(svc ClientAPI, w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	client, err := svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(toClientResponse(client))
}

func listClients(svc ClientAPI, w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	profitFrom, err := parseOptionalDecimal(q, "profitFrom")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid profitFrom")
		return
	}
	profitTo, err := parseOptionalDecimal(q, "profitTo")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid profitTo")
		return
	}

	page, err := svc.List(r.Context(), domain.ClientFilter{
		Search:     q.Get("search"),
		ProfitFrom: profitFrom,
		ProfitTo:   profitTo,
	}, parsePageRequest(q))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(toPageResponse(page, toClientResponse))
}

func createClient(svc ClientAPI, w http.ResponseWriter, r *http.Request) {
	req, ok := decodeClientRequest(w, r)
	if !ok {
		return
	}

	client, err := svc.Create(r.Context(), app.ClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toClientResponse(client))
}

func updateClient(svc ClientAPI, w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	req, ok := decodeClientRequest(w, r)
	if !ok {
		return
	}

	client, err := svc.Update(r.Context(), id, app.ClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(toClientResponse(client))
}

func setClientActive(svc ClientAPI, w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	active, err := strconv.ParseBool(r.URL.Query().Get("active"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeMissingRequiredField, "active query parameter is required")
		return
	}

	client, err := svc.SetActive(r.Context(), id, active)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(toClientResponse(client))
}

type clientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (r clientRequest) validate() error {
	if len(r.Name) < 3 {
		return errors.New("name must be at least 3 characters")
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return errors.New("a valid email is required")
	}
	return nil
}

func decodeClientRequest(w http.ResponseWriter, r *http.Request) (clientRequest, bool) {
	var req clientRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return clientRequest{}, false
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, codeMissingRequiredField, err.Error())
		return clientRequest{}, false
	}
	return req, true
}
