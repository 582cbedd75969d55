package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/apperr"
)

// respondError maps the service error taxonomy onto HTTP. Business
// violations keep their named reason; anything else is a plain 500.
func respondError(c *gin.Context, err error) {
	var (
		vErr  *apperr.ValidationError
		nfErr *apperr.NotFoundError
		aErr  *apperr.AuthorizationError
		cfErr *apperr.ConflictError
	)
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": vErr.Fields})
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Error()})
	case errors.As(err, &aErr):
		c.JSON(http.StatusForbidden, gin.H{"error": aErr.Reason})
	case errors.As(err, &cfErr):
		c.JSON(http.StatusConflict, gin.H{"error": cfErr.Reason})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
