package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentalops-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", &domain.NotFoundError{Entity: "rental", ID: 1}, http.StatusNotFound},
		{"insufficient stock", &domain.InsufficientStockError{EquipmentID: 1, Requested: 3, Available: 2}, http.StatusConflict},
		{"stop already assigned", &domain.StopAlreadyAssignedError{RentalID: 1, Type: domain.StopTypeDelivery}, http.StatusConflict},
		{"stop already completed", &domain.StopAlreadyCompletedError{StopID: 1}, http.StatusConflict},
		{"route incomplete", &domain.RouteIncompleteError{RouteID: 1, PendingStops: 2}, http.StatusConflict},
		{"invalid transition", &domain.InvalidTransitionError{Entity: "rental", From: "COMPLETED", To: "ACTIVE"}, http.StatusConflict},
		{"storage unavailable", fmt.Errorf("%w: dial tcp", domain.ErrStorageUnavailable), http.StatusServiceUnavailable},
		{"wrapped not found", fmt.Errorf("load: %w", &domain.NotFoundError{Entity: "route", ID: 2}), http.StatusNotFound},
		{"plain error", errors.New("bad input"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}
