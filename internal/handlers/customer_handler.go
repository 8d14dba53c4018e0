package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audittrail/internal/services"
)

// CustomerHandler handles customer-related requests.
type CustomerHandler struct {
	customerService services.CustomerServicer
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService services.CustomerServicer) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest represents the request payload for creating a customer.
type CreateCustomerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateCustomerRequest represents the request payload for updating a customer.
type UpdateCustomerRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// CreateCustomer handles POST /customers.
// @Summary     Create a customer
// @Description Create a customer; the creation is recorded in its audit trail
// @Tags        customers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCustomerRequest true "Customer details"
// @Success     201 {object} CustomerResponse "Customer created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, CustomerResponse{Customer: customer})
}

// GetCustomer handles GET /customers/:id.
// @Summary     Get a customer
// @Description Get a live customer by ID
// @Tags        customers
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Customer ID"
// @Success     200 {object} CustomerResponse "Customer"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Customer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, CustomerResponse{Customer: customer})
}

// UpdateCustomer handles PUT /customers/:id.
// @Summary     Update a customer
// @Description Update a customer's name or password; only changed, non-credential fields are audited
// @Tags        customers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Customer ID"
// @Param       request body UpdateCustomerRequest true "Fields to change"
// @Success     200 {object} CustomerResponse "Customer updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Customer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req UpdateCustomerRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, services.CustomerUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, CustomerResponse{Customer: customer})
}

// DeleteCustomer handles DELETE /customers/:id.
// @Summary     Delete a customer
// @Description Soft-delete a customer and record its final state
// @Tags        customers
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Customer ID"
// @Success     204 "Customer deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Customer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreCustomer handles POST /customers/:id/restore.
// @Summary     Restore a customer
// @Description Restore a soft-deleted customer and record the restored state
// @Tags        customers
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Customer ID"
// @Success     200 {object} CustomerResponse "Customer restored"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Deleted customer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /customers/{id}/restore [post]
func (h *CustomerHandler) RestoreCustomer(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	customer, err := h.customerService.RestoreCustomer(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, CustomerResponse{Customer: customer})
}
