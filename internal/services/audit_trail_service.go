package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "audittrail/internal/errors"
	"audittrail/internal/models"
)

// auditTrailService appends audit entries. It has no read, update or delete
// path; entries are consumed by external reporting.
type auditTrailService struct {
	db *gorm.DB
}

// NewAuditTrailService creates a new AuditTrailServicer.
func NewAuditTrailService(db *gorm.DB) AuditTrailServicer {
	return &auditTrailService{db: db}
}

// Append inserts entry. The store assigns ID and CreatedAt. Failures are
// returned to the caller without retry.
func (s *auditTrailService) Append(ctx context.Context, entry *models.AuditTrail) error {
	if entry == nil || entry.EntityName == "" || entry.EntityID == "" {
		return apperrors.ErrInvalidAuditEntry
	}
	if entry.ID != 0 {
		return apperrors.ErrAuditTrailImmutable
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrAuditAppendFailed, err)
	}
	return nil
}
