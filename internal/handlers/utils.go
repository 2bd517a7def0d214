package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skillmatch-io/apiserver/internal/auth"
	"github.com/skillmatch-io/apiserver/internal/judge"
	"github.com/skillmatch-io/apiserver/internal/services"
	"github.com/skillmatch-io/apiserver/internal/store"
)

type contextKey string

const contextIdentityKey contextKey = "identity"

// ErrorResponse is the error payload every endpoint returns.
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// MessageResponse is the success payload for endpoints that only confirm.
type MessageResponse struct {
	Msg string `json:"msg"`
}

func identityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(contextIdentityKey).(auth.Identity)
	return identity, ok
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Msg: message})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Msg)
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, services.ErrEmailTaken):
		writeError(w, http.StatusConflict, "User already exists")
	case errors.Is(err, services.ErrNotTaskOwner):
		writeError(w, http.StatusForbidden, "Not authorized to hire for this task")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, judge.ErrUnavailable):
		writeError(w, http.StatusBadGateway, "Code execution service unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

func parseIDParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
