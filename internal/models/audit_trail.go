package models

import (
	"time"

	"gorm.io/gorm"

	apperrors "audittrail/internal/errors"
)

// Action is the lifecycle transition an audit entry records.
type Action string

const (
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionDeleted  Action = "deleted"
	ActionRestored Action = "restored"
)

// Changes is the before/after payload of an audit entry. A nil side is
// stored as JSON null.
type Changes struct {
	Before map[string]any `json:"before"`
	After  map[string]any `json:"after"`
}

// AuditTrail is one immutable record of a single entity transition.
type AuditTrail struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EntityName string    `gorm:"size:100;not null;index:idx_audit_trails_entity" json:"entity_name"`
	EntityID   string    `gorm:"size:64;not null;index:idx_audit_trails_entity" json:"entity_id"`
	Action     Action    `gorm:"size:16;not null" json:"action"`
	UserID     *string   `gorm:"size:64;index" json:"user_id"`
	Changes    Changes   `gorm:"serializer:json" json:"changes"`
	IPAddress  *string   `gorm:"size:45" json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeUpdate rejects any modification of a written entry.
func (a *AuditTrail) BeforeUpdate(tx *gorm.DB) error {
	return apperrors.ErrAuditTrailImmutable
}

// BeforeDelete rejects removal of a written entry.
func (a *AuditTrail) BeforeDelete(tx *gorm.DB) error {
	return apperrors.ErrAuditTrailImmutable
}
