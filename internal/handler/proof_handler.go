package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/middleware"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/service"
)

type ProofHandler struct {
	Proofs *service.ProofService
	Review *service.ReviewService
	Access *service.AccessService
}

type submitProofRequest struct {
	ListingID string `json:"listingId"`
	Amount    int64  `json:"amount"`
	Method    string `json:"method"`
	Reference string `json:"reference"`
	ReceiptID string `json:"receiptRef"`
}

type reviewRequest struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
}

func proofFilterFrom(c *gin.Context) model.ProofFilter {
	f := model.ProofFilter{
		Status:    c.Query("status"),
		ListingID: c.Query("listing_id"),
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return f
}

// POST /api/proofs
func (h *ProofHandler) Submit(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	var req submitProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	p, err := h.Proofs.Submit(c.Request.Context(), ident.ID, service.SubmitInput{
		ListingID: req.ListingID,
		Amount:    req.Amount,
		Channel:   req.Method,
		Reference: req.Reference,
		ReceiptID: req.ReceiptID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/me/proofs?status=...&listing_id=...&limit=...&offset=...
func (h *ProofHandler) ListMine(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	proofs, err := h.Proofs.ListMine(c.Request.Context(), ident.ID, proofFilterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if proofs == nil {
		proofs = []model.ProofOfPayment{}
	}
	c.JSON(http.StatusOK, proofs)
}

// GET /api/me/unlocked
func (h *ProofHandler) Unlocked(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	ids, err := h.Access.UnlockedListings(c.Request.Context(), ident.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listingIds": ids})
}

// GET /api/admin/proofs/pending?listing_id=...&limit=...&offset=...
func (h *ProofHandler) ListPending(c *gin.Context) {
	proofs, err := h.Proofs.ListPending(c.Request.Context(), proofFilterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if proofs == nil {
		proofs = []model.ProofOfPayment{}
	}
	c.JSON(http.StatusOK, proofs)
}

// PATCH /api/admin/proofs/:id/review
func (h *ProofHandler) ReviewProof(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	p, err := h.Review.Review(c.Request.Context(), ident.ID, c.Param("id"), req.Decision, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
