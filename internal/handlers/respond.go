package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adilzhan-b/lingualink/pkg/apperrors"
)

type errorResponse struct {
	Code          string   `json:"code"`
	Message       string   `json:"message"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps each domain error kind to a distinct code and status so
// clients can act on the kind, not just the message.
func respondError(w http.ResponseWriter, err error) {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Code:          "validation_missing_fields",
			Message:       "All fields are required",
			MissingFields: verr.MissingFields,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Code: "not_found", Message: "Not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{Code: "forbidden", Message: "You are not allowed to do that"})
	case errors.Is(err, apperrors.ErrSelfRequest):
		respondJSON(w, http.StatusBadRequest, errorResponse{Code: "self_request", Message: err.Error()})
	case errors.Is(err, apperrors.ErrAlreadyFriends):
		respondJSON(w, http.StatusBadRequest, errorResponse{Code: "already_friends", Message: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateRequest):
		respondJSON(w, http.StatusBadRequest, errorResponse{Code: "duplicate_request", Message: err.Error()})
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Code: "internal_error", Message: "Internal server error"})
	}
}
