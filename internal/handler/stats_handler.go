package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/apperr"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/middleware"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/service"
)

type StatsHandler struct {
	Stats *service.StatsService
}

// GET /api/owners/:id/stats?months=6
func (h *StatsHandler) OwnerStats(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)
	ownerID := c.Param("id")

	if ident.ID != ownerID && !ident.IsAdmin() {
		respondError(c, apperr.NewAuthorization("stats are visible to the owner and admins only"))
		return
	}

	summary, err := h.Stats.StatsFor(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))
	monthly, err := h.Stats.MonthlyEarnings(c.Request.Context(), ownerID, months)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary, "monthly": monthly})
}
