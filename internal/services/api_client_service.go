package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	apperrors "audittrail/internal/errors"
	"audittrail/internal/models"
	"audittrail/internal/repository"
)

// apiClientService manages machine credentials.
type apiClientService struct {
	clients *repository.Store[models.APIClient]
}

// NewAPIClientService creates a new APIClientServicer.
func NewAPIClientService(clients *repository.Store[models.APIClient]) APIClientServicer {
	return &apiClientService{clients: clients}
}

// CreateAPIClient creates a client and returns its one-time plaintext secret.
func (s *apiClientService) CreateAPIClient(ctx context.Context, name, scopes string) (*models.APIClient, string, error) {
	if name == "" {
		return nil, "", apperrors.WithMessage(apperrors.ErrInvalidInput, "client name is required")
	}

	secret, err := newSecret()
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	client := &models.APIClient{Name: name, Scopes: scopes, Secret: hashSecret(secret)}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return client, secret, nil
}

// UpdateAPIClient applies the non-nil fields.
func (s *apiClientService) UpdateAPIClient(ctx context.Context, id uint, name, scopes *string) (*models.APIClient, error) {
	client, err := s.clients.Find(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrAPIClientNotFound)
	}

	if name != nil {
		if *name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "client name cannot be empty")
		}
		client.Name = *name
	}
	if scopes != nil {
		client.Scopes = *scopes
	}

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, storeError(err, apperrors.ErrAPIClientNotFound)
	}
	return client, nil
}

// RotateSecret replaces the client's secret and returns the new plaintext.
func (s *apiClientService) RotateSecret(ctx context.Context, id uint) (string, error) {
	client, err := s.clients.Find(ctx, id)
	if err != nil {
		return "", storeError(err, apperrors.ErrAPIClientNotFound)
	}

	secret, err := newSecret()
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	client.Secret = hashSecret(secret)

	if err := s.clients.Update(ctx, client); err != nil {
		return "", storeError(err, apperrors.ErrAPIClientNotFound)
	}
	return secret, nil
}

// DeleteAPIClient permanently removes a client.
func (s *apiClientService) DeleteAPIClient(ctx context.Context, id uint) error {
	client, err := s.clients.Find(ctx, id)
	if err != nil {
		return storeError(err, apperrors.ErrAPIClientNotFound)
	}
	if err := s.clients.Delete(ctx, client); err != nil {
		return storeError(err, apperrors.ErrAPIClientNotFound)
	}
	return nil
}

func newSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashSecret(secret string) string {
	h := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(h[:])
}
