package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eospatial/geoforestry/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// handleError translates service errors to HTTP statuses. Unrecognized errors
// become opaque 500s so storage details never leak to clients.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, model.ErrNameConflict):
		writeError(w, http.StatusConflict, "forestry name already exists")
	case errors.Is(err, model.ErrMalformedGeometry):
		writeError(w, http.StatusBadRequest, "malformed geometry payload")
	case errors.Is(err, model.ErrUserExists):
		writeError(w, http.StatusConflict, "user already exists")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
