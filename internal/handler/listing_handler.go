package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/middleware"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/service"
)

// ListingHandler manages all operations over listings. The projection
// decision for reads lives in the access service, never here.
type ListingHandler struct {
	Listings *service.ListingService
	Access   *service.AccessService
}

type listingRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Area          string   `json:"area"`
	Price         int64    `json:"price"`
	Amenities     []string `json:"amenities"`
	PreviewImages []string `json:"previewImages"`
	Address       string   `json:"address"`
	DirectionsURL string   `json:"directionsUrl"`
	LandlordName  string   `json:"landlordName"`
	LandlordPhone string   `json:"landlordPhone"`
}

func (r listingRequest) toInput() service.ListingInput {
	return service.ListingInput{
		Title:         r.Title,
		Description:   r.Description,
		Area:          r.Area,
		Price:         r.Price,
		Amenities:     r.Amenities,
		PreviewImages: r.PreviewImages,
		Address:       r.Address,
		DirectionsURL: r.DirectionsURL,
		LandlordName:  r.LandlordName,
		LandlordPhone: r.LandlordPhone,
	}
}

// POST /api/listings
func (h *ListingHandler) Create(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	l, err := h.Listings.Create(c.Request.Context(), ident.ID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l.Unlocked())
}

// GET /api/listings?area=...&min_price=...&max_price=...&limit=...&offset=...
func (h *ListingHandler) Browse(c *gin.Context) {
	f := model.ListingFilter{Area: c.Query("area")}
	if v := c.Query("min_price"); v != "" {
		if min, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.MinPrice = min
		}
	}
	if v := c.Query("max_price"); v != "" {
		if max, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.MaxPrice = max
		}
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.Listings.Browse(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]model.PublicView, 0, len(list))
	for i := range list {
		out = append(out, list[i].Public())
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/listings/:id
func (h *ListingHandler) Get(c *gin.Context) {
	id := c.Param("id")

	l, err := h.Listings.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Listings.RecordView(c.Request.Context(), id)

	ident, _ := middleware.IdentityFrom(c)
	view, unlocked, err := h.Access.ListingView(c.Request.Context(), ident, l)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": view, "isUnlocked": unlocked})
}

// GET /api/me/listings
func (h *ListingHandler) Mine(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	list, err := h.Listings.ListByOwner(c.Request.Context(), ident.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]model.UnlockedView, 0, len(list))
	for i := range list {
		out = append(out, list[i].Unlocked())
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /api/listings/:id
func (h *ListingHandler) Update(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	l, err := h.Listings.Update(c.Request.Context(), ident, c.Param("id"), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l.Unlocked())
}

// PUT /api/listings/:id/status
func (h *ListingHandler) SetStatus(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.Listings.SetStatus(c.Request.Context(), ident, c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": req.Status})
}

// DELETE /api/listings/:id
func (h *ListingHandler) Delete(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	if err := h.Listings.Delete(c.Request.Context(), ident, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
