package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/policy"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/dto"
)

// NegotiationHandler serves the offer / counter-offer endpoints.
type NegotiationHandler struct {
	facade NegotiationFacade
}

// NewNegotiationHandler constructs NegotiationHandler.
func NewNegotiationHandler(facade NegotiationFacade) *NegotiationHandler {
	return &NegotiationHandler{facade: facade}
}

// Offer handles POST /api/negotiation/:id/offer where id is the listing.
func (h *NegotiationHandler) Offer(c *gin.Context) {
	listingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.facade.SubmitOffer(c.Request.Context(), CurrentActor(c), listingID, *req.Price, req.BuyerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNegotiationResponse(session))
}

// Get handles GET /api/negotiation/:id.
func (h *NegotiationHandler) Get(c *gin.Context) {
	h.session(c, h.facade.Negotiation)
}

// Accept handles POST /api/negotiation/:id/accept.
func (h *NegotiationHandler) Accept(c *gin.Context) {
	h.session(c, h.facade.AcceptOffer)
}

// Reject handles POST /api/negotiation/:id/reject.
func (h *NegotiationHandler) Reject(c *gin.Context) {
	h.session(c, h.facade.RejectOffer)
}

type sessionOp func(ctx context.Context, actor policy.Actor, id int64) (*model.NegotiationSession, error)

func (h *NegotiationHandler) session(c *gin.Context, op sessionOp) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	session, err := op(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNegotiationResponse(session))
}

func toNegotiationResponse(s *model.NegotiationSession) dto.NegotiationResponse {
	offers := make([]dto.OfferResponse, 0, len(s.Offers))
	for _, o := range s.Offers {
		offers = append(offers, dto.OfferResponse{
			AuthorID:   o.AuthorID,
			AuthorRole: string(o.AuthorRole),
			Price:      o.Price,
			Kind:       string(o.Kind),
			CreatedAt:  o.CreatedAt,
		})
	}
	return dto.NegotiationResponse{
		ID:                   s.ID,
		ListingID:            s.ListingID,
		BuyerID:              s.BuyerID,
		FarmerID:             s.FarmerID,
		Status:               string(s.Status),
		Offers:               offers,
		AgreedPrice:          s.AgreedPrice,
		ListingPriceAtAccept: s.ListingPriceAtAccept,
		ConsumedByOrder:      s.ConsumedByOrder,
		Version:              s.Version,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}
