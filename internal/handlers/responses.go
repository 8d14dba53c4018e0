package handlers

import "audittrail/internal/models"

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// CustomerResponse wraps a single customer.
type CustomerResponse struct {
	Customer *models.Customer `json:"customer"`
}

// OrderResponse wraps a single order.
type OrderResponse struct {
	Order *models.Order `json:"order"`
}

// APIClientResponse wraps a single API client. Secret is only set when the
// client is created.
type APIClientResponse struct {
	APIClient *models.APIClient `json:"api_client"`
	Secret    string            `json:"secret,omitempty"`
}

// SecretResponse carries a freshly issued plaintext secret.
type SecretResponse struct {
	Secret string `json:"secret"`
}
