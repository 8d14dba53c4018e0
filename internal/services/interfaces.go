package services

import (
	"context"

	"audittrail/internal/models"
)

// AuditTrailServicer is the append-only audit trail store.
type AuditTrailServicer interface {
	Append(ctx context.Context, entry *models.AuditTrail) error
}

// CustomerUpdate holds the optional fields of a customer update.
type CustomerUpdate struct {
	Name     *string
	Password *string
}

// CustomerServicer defines the contract for customer-related business logic.
type CustomerServicer interface {
	CreateCustomer(ctx context.Context, email, name, password string) (*models.Customer, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, update CustomerUpdate) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	RestoreCustomer(ctx context.Context, id string) (*models.Customer, error)
}

// OrderUpdate holds the optional fields of an order update.
type OrderUpdate struct {
	Total  *int64
	Status *models.OrderStatus
	Notes  *string
}

// OrderServicer defines the contract for order-related business logic.
type OrderServicer interface {
	CreateOrder(ctx context.Context, customerID, reference string, total int64, currency, notes string) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	UpdateOrder(ctx context.Context, id string, update OrderUpdate) (*models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	RestoreOrder(ctx context.Context, id string) (*models.Order, error)
}

// APIClientServicer defines the contract for machine credential management.
type APIClientServicer interface {
	// CreateAPIClient returns the new client and its plaintext secret. Only
	// a hash of the secret is stored.
	CreateAPIClient(ctx context.Context, name, scopes string) (*models.APIClient, string, error)
	UpdateAPIClient(ctx context.Context, id uint, name, scopes *string) (*models.APIClient, error)
	RotateSecret(ctx context.Context, id uint) (string, error)
	DeleteAPIClient(ctx context.Context, id uint) error
}
