package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"audittrail/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCustomer creates a customer with a hashed password and unique
// email. It writes directly through GORM, so no audit entry is produced.
func CreateTestCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	n := nextID()
	customer := &models.Customer{
		Email:    fmt.Sprintf("customer%d@test.com", n),
		Name:     fmt.Sprintf("Customer %d", n),
		Password: string(hash),
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}
	return customer
}

// CreateTestOrder creates a pending USD order with the given total (in cents).
func CreateTestOrder(t *testing.T, db *gorm.DB, customerID string, total int64) *models.Order {
	t.Helper()

	order := &models.Order{
		CustomerID: customerID,
		Reference:  fmt.Sprintf("ORD-%d", nextID()),
		Total:      total,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create test order: %v", err)
	}
	return order
}

// CreateTestAPIClient creates an API client with a placeholder secret hash.
func CreateTestAPIClient(t *testing.T, db *gorm.DB) *models.APIClient {
	t.Helper()

	client := &models.APIClient{
		Name:   fmt.Sprintf("client-%d", nextID()),
		Secret: "not-a-real-hash",
		Scopes: "orders:read",
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create test api client: %v", err)
	}
	return client
}
