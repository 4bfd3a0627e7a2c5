package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"ACCOUNT_LOCKED", http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{"DUPLICATE_CODE", http.StatusConflict},
		{"DUPLICATE_USERNAME", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"INVALID_RATE", http.StatusUnprocessableEntity},
		{"INVALID_QUANTITY", http.StatusUnprocessableEntity},
		{"NO_ITEMS", http.StatusUnprocessableEntity},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"INCOMPATIBLE_UNITS", http.StatusUnprocessableEntity},
		{"ITEM_NOT_FOUND", http.StatusNotFound},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
		{"SOMETHING_NEW", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"a"}, 21, 1, 10)

		assert.True(t, resp.Success)
		assert.Equal(t, 3, resp.Meta.TotalPages)
		assert.Equal(t, int64(21), resp.Meta.Total)
	})
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "supplier not found")

	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "supplier not found", resp.Error.Message)
	assert.Nil(t, resp.Data)
}
