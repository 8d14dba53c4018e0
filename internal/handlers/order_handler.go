package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audittrail/internal/models"
	"audittrail/internal/services"
)

// OrderHandler handles order-related requests.
type OrderHandler struct {
	orderService services.OrderServicer
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService services.OrderServicer) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest represents the request payload for creating an order.
type CreateOrderRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
	Reference  string `json:"reference" binding:"required,min=1,max=64"`
	Total      int64  `json:"total" binding:"gte=0"`
	Currency   string `json:"currency" binding:"omitempty,iso4217"`
	Notes      string `json:"notes" binding:"max=500"`
}

// UpdateOrderRequest represents the request payload for updating an order.
type UpdateOrderRequest struct {
	Total  *int64              `json:"total" binding:"omitempty,gte=0"`
	Status *models.OrderStatus `json:"status" binding:"omitempty,order_status"`
	Notes  *string             `json:"notes" binding:"omitempty,max=500"`
}

// CreateOrder handles POST /orders.
// @Summary     Create an order
// @Description Create an order for a customer; the creation is recorded in its audit trail
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateOrderRequest true "Order details"
// @Success     201 {object} OrderResponse "Order created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Customer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req.CustomerID, req.Reference, req.Total, req.Currency, req.Notes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, OrderResponse{Order: order})
}

// GetOrder handles GET /orders/:id.
// @Summary     Get an order
// @Description Get a live order by ID
// @Tags        orders
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Order ID"
// @Success     200 {object} OrderResponse "Order"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Order not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, OrderResponse{Order: order})
}

// UpdateOrder handles PUT /orders/:id.
// @Summary     Update an order
// @Description Update an order's total, status or notes; only changed fields are audited
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Order ID"
// @Param       request body UpdateOrderRequest true "Fields to change"
// @Success     200 {object} OrderResponse "Order updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Order not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req UpdateOrderRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, services.OrderUpdate{
		Total:  req.Total,
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, OrderResponse{Order: order})
}

// DeleteOrder handles DELETE /orders/:id.
// @Summary     Delete an order
// @Description Soft-delete an order and record its final state
// @Tags        orders
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Order ID"
// @Success     204 "Order deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Order not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreOrder handles POST /orders/:id/restore.
// @Summary     Restore an order
// @Description Restore a soft-deleted order and record the restored state
// @Tags        orders
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Order ID"
// @Success     200 {object} OrderResponse "Order restored"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Deleted order not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders/{id}/restore [post]
func (h *OrderHandler) RestoreOrder(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	order, err := h.orderService.RestoreOrder(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, OrderResponse{Order: order})
}
