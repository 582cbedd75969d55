package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/middleware"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/repository"
)

// ReceiptHandler moves receipt images in and out of the media store.
// The proof ledger only ever sees the opaque id this hands back.
type ReceiptHandler struct {
	Receipts *repository.ReceiptRepository
}

// POST /api/receipts
func (h *ReceiptHandler) Upload(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot open file"})
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("receipt_%s_%s", ident.ID, fileHeader.Filename)
	receiptID, err := h.Receipts.Upload(file, filename, ident.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"receiptId": receiptID})
}

// GET /api/receipts/:id — only the uploader and admins may fetch the
// image back.
func (h *ReceiptHandler) Download(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)
	receiptID := c.Param("id")

	uploader, err := h.Receipts.UploaderOf(receiptID)
	if err != nil {
		respondError(c, err)
		return
	}
	if uploader != ident.ID && !ident.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "receipt belongs to another user"})
		return
	}

	data, filename, err := h.Receipts.Download(receiptID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename="+filename)
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
