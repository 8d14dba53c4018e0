package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "audittrail/internal/errors"
	"audittrail/internal/models"
	"audittrail/internal/services"
)

// --- mock customer service ---

type mockCustomerService struct {
	createCustomerFn  func(ctx context.Context, email, name, password string) (*models.Customer, error)
	getCustomerFn     func(ctx context.Context, id string) (*models.Customer, error)
	updateCustomerFn  func(ctx context.Context, id string, update services.CustomerUpdate) (*models.Customer, error)
	deleteCustomerFn  func(ctx context.Context, id string) error
	restoreCustomerFn func(ctx context.Context, id string) (*models.Customer, error)
}

func (m *mockCustomerService) CreateCustomer(ctx context.Context, email, name, password string) (*models.Customer, error) {
	if m.createCustomerFn != nil {
		return m.createCustomerFn(ctx, email, name, password)
	}
	return &models.Customer{}, nil
}

func (m *mockCustomerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	if m.getCustomerFn != nil {
		return m.getCustomerFn(ctx, id)
	}
	return &models.Customer{}, nil
}

func (m *mockCustomerService) UpdateCustomer(ctx context.Context, id string, update services.CustomerUpdate) (*models.Customer, error) {
	if m.updateCustomerFn != nil {
		return m.updateCustomerFn(ctx, id, update)
	}
	return &models.Customer{}, nil
}

func (m *mockCustomerService) DeleteCustomer(ctx context.Context, id string) error {
	if m.deleteCustomerFn != nil {
		return m.deleteCustomerFn(ctx, id)
	}
	return nil
}

func (m *mockCustomerService) RestoreCustomer(ctx context.Context, id string) (*models.Customer, error) {
	if m.restoreCustomerFn != nil {
		return m.restoreCustomerFn(ctx, id)
	}
	return &models.Customer{}, nil
}

var _ services.CustomerServicer = (*mockCustomerService)(nil)

func setupCustomerRouter(handler *CustomerHandler) *gin.Engine {
	r := newRouter()
	r.POST("/customers", handler.CreateCustomer)
	r.GET("/customers/:id", handler.GetCustomer)
	r.PUT("/customers/:id", handler.UpdateCustomer)
	r.DELETE("/customers/:id", handler.DeleteCustomer)
	r.POST("/customers/:id/restore", handler.RestoreCustomer)
	return r
}

func TestCustomerHandler_CreateCustomer(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockCustomerService{
			createCustomerFn: func(_ context.Context, email, name, password string) (*models.Customer, error) {
				c := &models.Customer{Base: models.Base{ID: testUUID}, Email: email, Name: name}
				_ = c.SetPassword(password)
				return c, nil
			},
		}
		r := setupCustomerRouter(NewCustomerHandler(svc))

		rec := doRequest(r, http.MethodPost, "/customers",
			`{"email":"ada@example.com","name":"Ada","password":"longenough"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		customer := parseJSON(t, rec)["customer"].(map[string]interface{})
		if customer["email"] != "ada@example.com" {
			t.Errorf("expected ada@example.com, got %v", customer["email"])
		}
		if _, ok := customer["password"]; ok {
			t.Error("password must not be serialised")
		}
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		r := setupCustomerRouter(NewCustomerHandler(&mockCustomerService{}))

		rec := doRequest(r, http.MethodPost, "/customers", `{"email":"ada@example.com","name":"Ada","password":"short"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		svc := &mockCustomerService{
			createCustomerFn: func(context.Context, string, string, string) (*models.Customer, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		r := setupCustomerRouter(NewCustomerHandler(svc))

		rec := doRequest(r, http.MethodPost, "/customers", `{"email":"ada@example.com","name":"Ada","password":"longenough"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})
}

func TestCustomerHandler_GetCustomer(t *testing.T) {
	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupCustomerRouter(NewCustomerHandler(&mockCustomerService{}))

		rec := doRequest(r, http.MethodGet, "/customers/42", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockCustomerService{
			getCustomerFn: func(context.Context, string) (*models.Customer, error) {
				return nil, apperrors.ErrCustomerNotFound
			},
		}
		r := setupCustomerRouter(NewCustomerHandler(svc))

		rec := doRequest(r, http.MethodGet, "/customers/"+testUUID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CUSTOMER_NOT_FOUND")
	})
}

func TestCustomerHandler_UpdateCustomer(t *testing.T) {
	var got services.CustomerUpdate
	svc := &mockCustomerService{
		updateCustomerFn: func(_ context.Context, id string, update services.CustomerUpdate) (*models.Customer, error) {
			got = update
			return &models.Customer{Base: models.Base{ID: id}, Name: *update.Name}, nil
		},
	}
	r := setupCustomerRouter(NewCustomerHandler(svc))

	rec := doRequest(r, http.MethodPut, "/customers/"+testUUID, `{"name":"Grace"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Name == nil || *got.Name != "Grace" || got.Password != nil {
		t.Errorf("expected only name to be passed, got %+v", got)
	}
}

func TestCustomerHandler_DeleteAndRestore(t *testing.T) {
	var deleted, restored string
	svc := &mockCustomerService{
		deleteCustomerFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
		restoreCustomerFn: func(_ context.Context, id string) (*models.Customer, error) {
			restored = id
			return &models.Customer{Base: models.Base{ID: id}}, nil
		},
	}
	r := setupCustomerRouter(NewCustomerHandler(svc))

	rec := doRequest(r, http.MethodDelete, "/customers/"+testUUID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doRequest(r, http.MethodPost, "/customers/"+testUUID+"/restore", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if deleted != testUUID || restored != testUUID {
		t.Errorf("expected %s to be deleted and restored, got %q and %q", testUUID, deleted, restored)
	}
}
