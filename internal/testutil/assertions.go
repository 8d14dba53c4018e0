package testutil

import (
	"errors"
	"strings"
	"testing"

	apperrors "audittrail/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code
// and returns it for further inspection.
func AssertAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertWrappedError checks that err is an *AppError with the expected code
// whose internal cause is, or wraps, cause. The cause stays out of the
// client-facing message.
func AssertWrappedError(t *testing.T, err error, expectedCode string, cause error) {
	t.Helper()

	appErr := AssertAppError(t, err, expectedCode)
	if appErr.Internal == nil {
		t.Fatalf("expected %s to carry an internal cause, got none", expectedCode)
	}
	if !errors.Is(appErr.Internal, cause) {
		t.Errorf("expected internal cause %v, got %v", cause, appErr.Internal)
	}
	if strings.Contains(appErr.Message, cause.Error()) {
		t.Errorf("internal cause leaked into message %q", appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
