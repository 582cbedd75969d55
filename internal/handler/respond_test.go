package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/apperr"
)

func TestRespondError_Mapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		status   int
		contains string
	}{
		{"validation", apperr.NewValidation("amount", "must equal the access fee"), http.StatusBadRequest, "amount"},
		{"not found", apperr.NewNotFound("listing", "abc"), http.StatusNotFound, "listing abc not found"},
		{"authorization", apperr.NewAuthorization("stats are visible to the owner and admins only"), http.StatusForbidden, "owner"},
		{"conflict pending", apperr.NewConflict(apperr.ConflictPendingExists), http.StatusConflict, apperr.ConflictPendingExists},
		{"conflict reviewed", apperr.NewConflict(apperr.ConflictAlreadyReviewed), http.StatusConflict, apperr.ConflictAlreadyReviewed},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

// Wrapped service errors still map by their underlying kind.
func TestRespondError_UnwrapsWrappedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	wrapped := fmt.Errorf("ProofService.Submit: %w", apperr.NewConflict(apperr.ConflictAlreadyUnlocked))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, wrapped)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), apperr.ConflictAlreadyUnlocked)
}
