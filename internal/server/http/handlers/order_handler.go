package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/dto"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/order.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lines := make([]usecase.LineRequest, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, usecase.LineRequest{ListingID: l.ListingID, Quantity: l.Quantity, NegotiationID: l.NegotiationID})
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentActor(c), usecase.CreateOrderRequest{
		Lines:           lines,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Get handles GET /api/order/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentActor(c), model.OrderStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Update handles PATCH /api/order/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var patch usecase.OrderPatch
	if req.Status != nil {
		status := model.OrderStatus(*req.Status)
		patch.Status = &status
	}
	if req.PaymentStatus != nil {
		payment := model.PaymentStatus(*req.PaymentStatus)
		patch.PaymentStatus = &payment
	}
	patch.ShippingAddress = req.ShippingAddress

	order, err := h.facade.PatchOrder(c.Request.Context(), CurrentActor(c), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Cancel handles POST /api/order/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.CancelOrder(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ListingID:     l.ListingID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			Subtotal:      l.Subtotal(),
			NegotiationID: l.NegotiationID,
		})
	}
	return dto.OrderResponse{
		ID:              order.ID,
		BuyerID:         order.BuyerID,
		FarmerID:        order.FarmerID,
		Lines:           lines,
		Total:           order.Total,
		Status:          string(order.Status),
		PaymentStatus:   string(order.PaymentStatus),
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
