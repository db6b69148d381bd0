package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain error kinds onto HTTP statuses. Conflicts carry the
// offending entity in the message so the operator can resolve them.
func writeError(w http.ResponseWriter, err error) {
	var (
		notFound     *domain.NotFoundError
		insufficient *domain.InsufficientStockError
		assigned     *domain.StopAlreadyAssignedError
		completed    *domain.StopAlreadyCompletedError
		incomplete   *domain.RouteIncompleteError
		transition   *domain.InvalidTransitionError
	)

	status := http.StatusBadRequest
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &insufficient),
		errors.As(err, &assigned),
		errors.As(err, &completed),
		errors.As(err, &incomplete),
		errors.As(err, &transition):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusServiceUnavailable {
		logger.Error("Storage failure", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}
