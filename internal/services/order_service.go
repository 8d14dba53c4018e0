package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "audittrail/internal/errors"
	"audittrail/internal/models"
	"audittrail/internal/repository"
)

// orderService handles order-related business logic.
type orderService struct {
	db     *gorm.DB
	orders *repository.Store[models.Order]
}

// NewOrderService creates a new OrderServicer.
func NewOrderService(db *gorm.DB, orders *repository.Store[models.Order]) OrderServicer {
	return &orderService{db: db, orders: orders}
}

// CreateOrder creates a pending order for an existing customer.
func (s *orderService) CreateOrder(ctx context.Context, customerID, reference string, total int64, currency, notes string) (*models.Order, error) {
	if reference == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "order reference is required")
	}
	if total < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "order total cannot be negative")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", customerID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrCustomerNotFound
	}

	order := &models.Order{
		CustomerID: customerID,
		Reference:  reference,
		Total:      total,
		Currency:   currency,
		Notes:      notes,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return order, nil
}

// GetOrder retrieves a live order by ID.
func (s *orderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.Find(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrOrderNotFound)
	}
	return order, nil
}

// UpdateOrder applies the non-nil fields of update.
func (s *orderService) UpdateOrder(ctx context.Context, id string, update OrderUpdate) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Total != nil {
		if *update.Total < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "order total cannot be negative")
		}
		order.Total = *update.Total
	}
	if update.Status != nil {
		order.Status = *update.Status
	}
	if update.Notes != nil {
		order.Notes = *update.Notes
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, storeError(err, apperrors.ErrOrderNotFound)
	}
	return order, nil
}

// DeleteOrder soft-deletes an order.
func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, order); err != nil {
		return storeError(err, apperrors.ErrOrderNotFound)
	}
	return nil
}

// RestoreOrder brings back a soft-deleted order.
func (s *orderService) RestoreOrder(ctx context.Context, id string) (*models.Order, error) {
	order := &models.Order{Base: models.Base{ID: id}}
	if err := s.orders.Restore(ctx, order); err != nil {
		return nil, storeError(err, apperrors.ErrOrderNotFound)
	}
	return order, nil
}
