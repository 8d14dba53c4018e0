package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "audittrail/internal/errors"
	"audittrail/internal/models"
	"audittrail/internal/repository"
)

// customerService handles customer-related business logic.
type customerService struct {
	db        *gorm.DB
	customers *repository.Store[models.Customer]
}

// NewCustomerService creates a new CustomerServicer. Writes go through
// customers so that its observers see every transition.
func NewCustomerService(db *gorm.DB, customers *repository.Store[models.Customer]) CustomerServicer {
	return &customerService{db: db, customers: customers}
}

// CreateCustomer registers a new customer with a hashed password.
func (s *customerService) CreateCustomer(ctx context.Context, email, name, password string) (*models.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Customer{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	customer := &models.Customer{Email: email, Name: name}
	if err := customer.SetPassword(password); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return customer, nil
}

// GetCustomer retrieves a live customer by ID.
func (s *customerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.customers.Find(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrCustomerNotFound)
	}
	return customer, nil
}

// UpdateCustomer applies the non-nil fields of update.
func (s *customerService) UpdateCustomer(ctx context.Context, id string, update CustomerUpdate) (*models.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		customer.Name = *update.Name
	}
	if update.Password != nil {
		if *update.Password == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "password cannot be empty")
		}
		if err := customer.SetPassword(*update.Password); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// A new password invalidates remembered sessions.
		customer.RememberToken = ""
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, storeError(err, apperrors.ErrCustomerNotFound)
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer.
func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	if err := s.customers.Delete(ctx, customer); err != nil {
		return storeError(err, apperrors.ErrCustomerNotFound)
	}
	return nil
}

// RestoreCustomer brings back a soft-deleted customer.
func (s *customerService) RestoreCustomer(ctx context.Context, id string) (*models.Customer, error) {
	customer := &models.Customer{Base: models.Base{ID: id}}
	if err := s.customers.Restore(ctx, customer); err != nil {
		return nil, storeError(err, apperrors.ErrCustomerNotFound)
	}
	return customer, nil
}
