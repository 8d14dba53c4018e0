package services

import (
	"context"
	"testing"

	"audittrail/internal/models"
	"audittrail/internal/testutil"
)

func TestCreateOrder(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewOrderService(db, auditedStore[models.Order](t, db))
		customer := testutil.CreateTestCustomer(t, db)

		order, err := svc.CreateOrder(context.Background(), customer.ID, "ORD-100", 100, "", "")
		testutil.AssertNoError(t, err)

		if order.Currency != "USD" || order.Status != models.OrderStatusPending {
			t.Errorf("expected pending USD order, got %s %s", order.Status, order.Currency)
		}

		trails := testutil.AuditTrailsFor(t, db, "Order", order.ID)
		if len(trails) != 1 {
			t.Fatalf("expected 1 audit entry, got %d", len(trails))
		}
		after := trails[0].Changes.After
		if after["total"] != float64(100) {
			t.Errorf("expected total 100, got %v", after["total"])
		}
		if after["reference"] != "ORD-100" {
			t.Errorf("expected reference ORD-100, got %v", after["reference"])
		}
	})

	t.Run("unknown_customer", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewOrderService(db, auditedStore[models.Order](t, db))

		_, err := svc.CreateOrder(context.Background(), "0190a1b2-0000-7000-8000-000000000000", "ORD-1", 1, "", "")
		testutil.AssertAppError(t, err, "CUSTOMER_NOT_FOUND")
	})

	t.Run("negative_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewOrderService(db, auditedStore[models.Order](t, db))
		customer := testutil.CreateTestCustomer(t, db)

		_, err := svc.CreateOrder(context.Background(), customer.ID, "ORD-1", -1, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("failed_insert_is_not_audited", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewOrderService(db, auditedStore[models.Order](t, db))
		customer := testutil.CreateTestCustomer(t, db)
		existing := testutil.CreateTestOrder(t, db, customer.ID, 10)

		_, err := svc.CreateOrder(context.Background(), customer.ID, existing.Reference, 20, "", "")
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		var count int64
		db.Model(&models.AuditTrail{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no audit entries, got %d", count)
		}
	})
}

func TestUpdateOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewOrderService(db, auditedStore[models.Order](t, db))
	customer := testutil.CreateTestCustomer(t, db)
	existing := testutil.CreateTestOrder(t, db, customer.ID, 100)

	total := int64(250)
	status := models.OrderStatusPaid
	updated, err := svc.UpdateOrder(context.Background(), existing.ID, OrderUpdate{Total: &total, Status: &status})
	testutil.AssertNoError(t, err)
	if updated.Total != 250 || updated.Status != models.OrderStatusPaid {
		t.Errorf("expected paid order of 250, got %s %d", updated.Status, updated.Total)
	}

	trails := testutil.AuditTrailsFor(t, db, "Order", existing.ID)
	if len(trails) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(trails))
	}
	changes := trails[0].Changes
	if len(changes.Before) != 2 || changes.Before["total"] != float64(100) || changes.Before["status"] != "pending" {
		t.Errorf("unexpected before state: %v", changes.Before)
	}
	if len(changes.After) != 2 || changes.After["total"] != float64(250) || changes.After["status"] != "paid" {
		t.Errorf("unexpected after state: %v", changes.After)
	}

	negative := int64(-5)
	_, err = svc.UpdateOrder(context.Background(), existing.ID, OrderUpdate{Total: &negative})
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestDeleteAndRestoreOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewOrderService(db, auditedStore[models.Order](t, db))
	customer := testutil.CreateTestCustomer(t, db)
	existing := testutil.CreateTestOrder(t, db, customer.ID, 100)
	ctx := context.Background()

	testutil.AssertNoError(t, svc.DeleteOrder(ctx, existing.ID))

	err := svc.DeleteOrder(ctx, existing.ID)
	testutil.AssertAppError(t, err, "ORDER_NOT_FOUND")

	restored, err := svc.RestoreOrder(ctx, existing.ID)
	testutil.AssertNoError(t, err)
	if restored.Total != 100 {
		t.Errorf("expected restored total 100, got %d", restored.Total)
	}

	trails := testutil.AuditTrailsFor(t, db, "Order", existing.ID)
	if len(trails) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(trails))
	}
	if trails[0].Action != models.ActionDeleted || trails[1].Action != models.ActionRestored {
		t.Errorf("expected deleted then restored, got %s then %s", trails[0].Action, trails[1].Action)
	}
}
