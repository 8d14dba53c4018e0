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

// --- mock api client service ---

type mockAPIClientService struct {
	createAPIClientFn func(ctx context.Context, name, scopes string) (*models.APIClient, string, error)
	updateAPIClientFn func(ctx context.Context, id uint, name, scopes *string) (*models.APIClient, error)
	rotateSecretFn    func(ctx context.Context, id uint) (string, error)
	deleteAPIClientFn func(ctx context.Context, id uint) error
}

func (m *mockAPIClientService) CreateAPIClient(ctx context.Context, name, scopes string) (*models.APIClient, string, error) {
	if m.createAPIClientFn != nil {
		return m.createAPIClientFn(ctx, name, scopes)
	}
	return &models.APIClient{}, "", nil
}

func (m *mockAPIClientService) UpdateAPIClient(ctx context.Context, id uint, name, scopes *string) (*models.APIClient, error) {
	if m.updateAPIClientFn != nil {
		return m.updateAPIClientFn(ctx, id, name, scopes)
	}
	return &models.APIClient{}, nil
}

func (m *mockAPIClientService) RotateSecret(ctx context.Context, id uint) (string, error) {
	if m.rotateSecretFn != nil {
		return m.rotateSecretFn(ctx, id)
	}
	return "", nil
}

func (m *mockAPIClientService) DeleteAPIClient(ctx context.Context, id uint) error {
	if m.deleteAPIClientFn != nil {
		return m.deleteAPIClientFn(ctx, id)
	}
	return nil
}

var _ services.APIClientServicer = (*mockAPIClientService)(nil)

func setupAPIClientRouter(handler *APIClientHandler) *gin.Engine {
	r := newRouter()
	r.POST("/api-clients", handler.CreateAPIClient)
	r.PUT("/api-clients/:id", handler.UpdateAPIClient)
	r.POST("/api-clients/:id/rotate", handler.RotateSecret)
	r.DELETE("/api-clients/:id", handler.DeleteAPIClient)
	return r
}

func TestAPIClientHandler_CreateAPIClient(t *testing.T) {
	svc := &mockAPIClientService{
		createAPIClientFn: func(_ context.Context, name, scopes string) (*models.APIClient, string, error) {
			return &models.APIClient{ID: 3, Name: name, Scopes: scopes, Secret: "hashed"}, "plain", nil
		},
	}
	r := setupAPIClientRouter(NewAPIClientHandler(svc))

	rec := doRequest(r, http.MethodPost, "/api-clients", `{"name":"ci","scopes":"orders:read"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["secret"] != "plain" {
		t.Errorf("expected plaintext secret in response, got %v", result["secret"])
	}
	client := result["api_client"].(map[string]interface{})
	if _, ok := client["secret"]; ok {
		t.Error("stored secret hash must not be serialised")
	}
}

func TestAPIClientHandler_RotateSecret(t *testing.T) {
	t.Run("returns new secret", func(t *testing.T) {
		var rotated uint
		svc := &mockAPIClientService{
			rotateSecretFn: func(_ context.Context, id uint) (string, error) {
				rotated = id
				return "fresh", nil
			},
		}
		r := setupAPIClientRouter(NewAPIClientHandler(svc))

		rec := doRequest(r, http.MethodPost, "/api-clients/3/rotate", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rotated != 3 || parseJSON(t, rec)["secret"] != "fresh" {
			t.Errorf("expected client 3 to get a fresh secret, got %d", rotated)
		}
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupAPIClientRouter(NewAPIClientHandler(&mockAPIClientService{}))

		rec := doRequest(r, http.MethodPost, "/api-clients/abc/rotate", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAPIClientHandler_DeleteAPIClient(t *testing.T) {
	svc := &mockAPIClientService{
		deleteAPIClientFn: func(context.Context, uint) error {
			return apperrors.ErrAPIClientNotFound
		},
	}
	r := setupAPIClientRouter(NewAPIClientHandler(svc))

	rec := doRequest(r, http.MethodDelete, "/api-clients/9", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "API_CLIENT_NOT_FOUND")
}
