package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audittrail/internal/services"
)

// APIClientHandler handles machine credential requests.
type APIClientHandler struct {
	apiClientService services.APIClientServicer
}

// NewAPIClientHandler creates a new APIClientHandler.
func NewAPIClientHandler(apiClientService services.APIClientServicer) *APIClientHandler {
	return &APIClientHandler{apiClientService: apiClientService}
}

// CreateAPIClientRequest represents the request payload for creating an API client.
type CreateAPIClientRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=100"`
	Scopes string `json:"scopes" binding:"max=500"`
}

// UpdateAPIClientRequest represents the request payload for updating an API client.
type UpdateAPIClientRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=100"`
	Scopes *string `json:"scopes" binding:"omitempty,max=500"`
}

// CreateAPIClient handles POST /api-clients. The secret is only ever
// returned here and on rotation.
// @Summary     Create an API client
// @Description Create a machine credential; the plaintext secret is returned once and never audited
// @Tags        api-clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAPIClientRequest true "API client details"
// @Success     201 {object} APIClientResponse "API client created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api-clients [post]
func (h *APIClientHandler) CreateAPIClient(c *gin.Context) {
	var req CreateAPIClientRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	client, secret, err := h.apiClientService.CreateAPIClient(c.Request.Context(), req.Name, req.Scopes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, APIClientResponse{APIClient: client, Secret: secret})
}

// UpdateAPIClient handles PUT /api-clients/:id.
// @Summary     Update an API client
// @Description Update an API client's name or scopes
// @Tags        api-clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "API client ID"
// @Param       request body UpdateAPIClientRequest true "Fields to change"
// @Success     200 {object} APIClientResponse "API client updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "API client not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api-clients/{id} [put]
func (h *APIClientHandler) UpdateAPIClient(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req UpdateAPIClientRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	client, err := h.apiClientService.UpdateAPIClient(c.Request.Context(), id, req.Name, req.Scopes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, APIClientResponse{APIClient: client})
}

// RotateSecret handles POST /api-clients/:id/rotate.
// @Summary     Rotate an API client secret
// @Description Issue a new secret for an API client
// @Tags        api-clients
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "API client ID"
// @Success     200 {object} SecretResponse "New secret"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "API client not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api-clients/{id}/rotate [post]
func (h *APIClientHandler) RotateSecret(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	secret, err := h.apiClientService.RotateSecret(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, SecretResponse{Secret: secret})
}

// DeleteAPIClient handles DELETE /api-clients/:id.
// @Summary     Delete an API client
// @Description Permanently delete an API client and record its final state
// @Tags        api-clients
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "API client ID"
// @Success     204 "API client deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "API client not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api-clients/{id} [delete]
func (h *APIClientHandler) DeleteAPIClient(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.apiClientService.DeleteAPIClient(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
