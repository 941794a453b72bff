package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", fmt.Errorf("%w: month out of range", ErrValidation), http.StatusBadRequest, "validation_error"},
		{"not found", fmt.Errorf("tenant: %w", ErrNotFound), http.StatusNotFound, "not_found"},
		{"building full", ErrCapacityExceeded, http.StatusConflict, "capacity_exceeded"},
		{"house occupied", fmt.Errorf("house A1: %w", ErrHouseOccupied), http.StatusConflict, "house_occupied"},
		{"plain conflict", ErrConflict, http.StatusConflict, "conflict"},
		{"duplicate", ErrDuplicate, http.StatusConflict, "duplicate"},
		{"missing rent", ErrConfiguration, http.StatusUnprocessableEntity, "configuration_error"},
		{"store down", NewAppError(500, "failed to begin transaction", ErrUnavailable), http.StatusServiceUnavailable, "unavailable"},
		{"app error status", NewAppError(http.StatusBadGateway, "gateway failed", errors.New("boom")), http.StatusBadGateway, "internal_error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := Classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestConflictSentinelsWrapConflict(t *testing.T) {
	assert.ErrorIs(t, ErrCapacityExceeded, ErrConflict)
	assert.ErrorIs(t, ErrHouseOccupied, ErrConflict)
	assert.NotErrorIs(t, ErrCapacityExceeded, ErrHouseOccupied)
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError(500, "failed to commit transaction", ErrUnavailable)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "failed to commit transaction: service unavailable", err.Error())
	assert.Equal(t, "no cause", NewAppError(500, "no cause", nil).Error())
}
