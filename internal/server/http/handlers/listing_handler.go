package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/dto"
)

// ListingHandler manages catalog endpoints.
type ListingHandler struct {
	facade CatalogFacade
}

// NewListingHandler constructs ListingHandler.
func NewListingHandler(facade CatalogFacade) *ListingHandler {
	return &ListingHandler{facade: facade}
}

// Create handles POST /api/listings.
func (h *ListingHandler) Create(c *gin.Context) {
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	listing, err := h.facade.CreateListing(c.Request.Context(), CurrentActor(c), model.Listing{
		Title:      req.Title,
		Unit:       req.Unit,
		Price:      req.Price,
		Available:  req.Available,
		Negotiable: req.Negotiable,
		Status:     model.ListingStatus(req.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toListingResponse(listing))
}

// Get handles GET /api/listings/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	listing, err := h.facade.Listing(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListingResponse(listing))
}

// Update handles PATCH /api/listings/:id.
func (h *ListingHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	patch := model.ListingPatch{
		Title:      req.Title,
		Unit:       req.Unit,
		Price:      req.Price,
		Available:  req.Available,
		Negotiable: req.Negotiable,
	}
	if req.Status != nil {
		status := model.ListingStatus(*req.Status)
		patch.Status = &status
	}

	listing, err := h.facade.UpdateListing(c.Request.Context(), CurrentActor(c), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListingResponse(listing))
}

func toListingResponse(l *model.Listing) dto.ListingResponse {
	return dto.ListingResponse{
		ID:         l.ID,
		FarmerID:   l.FarmerID,
		Title:      l.Title,
		Unit:       l.Unit,
		Price:      l.Price,
		Available:  l.Available,
		Negotiable: l.Negotiable,
		Status:     string(l.Status),
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}
