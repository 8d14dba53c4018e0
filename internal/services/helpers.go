package services

import (
	"errors"

	apperrors "audittrail/internal/errors"
)

// storeError maps an entity store error onto the service's error vocabulary.
func storeError(err error, notFound *apperrors.AppError) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return notFound
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
