package models

import "gorm.io/gorm"

// OrderStatus represents where an order is in fulfilment.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a customer purchase. Total is stored in minor units (cents).
type Order struct {
	Base
	CustomerID string      `gorm:"type:uuid;not null;index" json:"customer_id"`
	Reference  string      `gorm:"uniqueIndex;not null" json:"reference"`
	Total      int64       `gorm:"not null" json:"total"`
	Currency   string      `gorm:"size:3;not null" json:"currency"`
	Status     OrderStatus `gorm:"size:16;not null" json:"status"`
	Notes      string      `json:"notes"`
}

// BeforeCreate fills the currency and status defaults, then assigns the ID.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.Currency == "" {
		o.Currency = "USD"
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return o.Base.BeforeCreate(tx)
}
