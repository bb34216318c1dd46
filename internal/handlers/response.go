package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sjbrooks/Warbler/internal/logger"
	"github.com/sjbrooks/Warbler/internal/models"
)

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: not found: account
	Error string `json:"error"`
}

var (
	errInvalidBody = errors.New("invalid request body")
	errInvalidID   = errors.New("invalid id")
	errNoSession   = errors.New("access unauthorized")
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// writeError maps a domain error to its HTTP status. Errors of no known kind
// are logged and hidden behind a 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrUnauthorized):
		writeErrorMessage(w, http.StatusUnauthorized, err)
	case errors.Is(err, models.ErrForbidden):
		writeErrorMessage(w, http.StatusForbidden, err)
	case errors.Is(err, models.ErrValidation):
		writeErrorMessage(w, http.StatusBadRequest, err)
	case errors.Is(err, models.ErrConflict):
		writeErrorMessage(w, http.StatusConflict, err)
	case errors.Is(err, models.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, err)
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// idParam parses the positive integer route parameter "id".
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// sortedIDs flattens an id set into an ascending slice.
func sortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
