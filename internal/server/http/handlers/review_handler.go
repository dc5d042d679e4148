package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/dto"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/usecase"
)

// ReviewHandler serves review endpoints.
type ReviewHandler struct {
	facade ReviewFacade
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(facade ReviewFacade) *ReviewHandler {
	return &ReviewHandler{facade: facade}
}

// Create handles POST /api/review.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	review, err := h.facade.CreateReview(c.Request.Context(), CurrentActor(c), usecase.CreateReviewRequest{
		OrderID:   req.OrderID,
		ListingID: req.ListingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReviewResponse(*review))
}

// Reply handles PATCH /api/review/:id/reply.
func (h *ReviewHandler) Reply(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	review, err := h.facade.ReplyToReview(c.Request.Context(), CurrentActor(c), id, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(*review))
}

// ListForFarmer handles GET /api/farmers/:id/reviews.
func (h *ReviewHandler) ListForFarmer(c *gin.Context) {
	farmerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	reviews, err := h.facade.FarmerReviews(c.Request.Context(), farmerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(reviews) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp = append(resp, toReviewResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

func toReviewResponse(r model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:         r.ID,
		OrderID:    r.OrderID,
		ListingID:  r.ListingID,
		ReviewerID: r.ReviewerID,
		TargetID:   r.TargetID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		Reply:      r.Reply,
		RepliedAt:  r.RepliedAt,
		CreatedAt:  r.CreatedAt,
	}
}
