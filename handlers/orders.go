package handlers

import (
	"net/http"

	"food-storefront/apperr"
	"food-storefront/middleware"
	"food-storefront/models"
	"food-storefront/orders"
	"food-storefront/statemachine"

	"github.com/gin-gonic/gin"
)

// orderResponse is an order as rendered to clients. Tracking steps come from
// the server record; clients never derive them.
type orderResponse struct {
	models.Order
	Progress    int  `json:"progress"`
	Cancellable bool `json:"cancellable"`
}

func toResponse(o *models.Order) orderResponse {
	return orderResponse{
		Order:       *o,
		Progress:    statemachine.Progress(o.Status),
		Cancellable: orders.IsCancellable(o),
	}
}

type CreateOrderRequest struct {
	RestaurantID    uint               `json:"restaurantId"`
	RestaurantName  string             `json:"restaurantName"`
	Items           []models.OrderItem `json:"items" binding:"dive"`
	Total           *float64           `json:"total"`
	DeliveryAddress string             `json:"deliveryAddress"`
}

type UpdateStatusRequest struct {
	OrderID string             `json:"orderId"`
	Status  models.OrderStatus `json:"status"`
}

type CancelOrderRequest struct {
	OrderID string `json:"orderId"`
}

type QuoteRequest struct {
	RestaurantID uint               `json:"restaurantId" binding:"required"`
	Items        []models.OrderItem `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder creates a new order owned by the caller
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.Orders.Create(c.Request.Context(), middleware.GetUserID(c), orders.CreateInput{
		RestaurantID:    req.RestaurantID,
		RestaurantName:  req.RestaurantName,
		Items:           req.Items,
		Total:           req.Total,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": toResponse(order)})
}

// GetMyOrders returns all orders for the logged-in user, newest first
func (h *Handler) GetMyOrders(c *gin.Context) {
	list, err := h.Orders.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]orderResponse, len(list))
	for i := range list {
		out[i] = toResponse(&list[i])
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "orders": out})
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.Orders.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": toResponse(order)})
}

// UpdateOrderStatus sets the status of one of the caller's orders
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.Orders.UpdateStatus(c.Request.Context(), middleware.GetUserID(c), req.OrderID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": toResponse(order)})
}

// AdvanceOrder moves an order one step along the lifecycle ("simulate")
func (h *Handler) AdvanceOrder(c *gin.Context) {
	order, err := h.Orders.Advance(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": toResponse(order)})
}

// CancelOrder deletes a pending or confirmed order
func (h *Handler) CancelOrder(c *gin.Context) {
	var req CancelOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.OrderID == "" {
		respondError(c, apperr.Validation("Order ID required"))
		return
	}

	err := h.Orders.Cancel(c.Request.Context(), middleware.GetUserID(c), req.OrderID)
	if apperr.KindOf(err) == apperr.KindConflict {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order canceled successfully"})
}

// QuoteOrder prices a prospective cart
func (h *Handler) QuoteOrder(c *gin.Context) {
	var req QuoteRequest
	if !bindJSON(c, &req) {
		return
	}
	quote, err := h.Quoter.Quote(c.Request.Context(), req.RestaurantID, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "quote": quote})
}
