package services

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"audittrail/internal/audit"
	"audittrail/internal/repository"
)

// auditedStore returns a store whose writes are audited into db.
func auditedStore[T any](t *testing.T, db *gorm.DB) *repository.Store[T] {
	t.Helper()

	store, err := repository.NewStore[T](db)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	auditor := audit.New(NewAuditTrailService(db), audit.WithLogger(zap.NewNop().Sugar()))
	if err := auditor.Attach(store); err != nil {
		t.Fatalf("failed to attach auditor: %v", err)
	}
	return store
}

func strPtr(s string) *string { return &s }
