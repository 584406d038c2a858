package gisterr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/containerd/errdefs"
)

// Error kinds.
var (
	// ErrConfig reports a missing or unreadable config file, or a missing token.
	ErrConfig = fmt.Errorf("configuration error: %w", errdefs.ErrFailedPrecondition)
	// ErrAuth reports a credential rejected by the remote service.
	ErrAuth = fmt.Errorf("authentication failed: %w", errdefs.ErrUnauthenticated)
	// ErrNotFound reports an unknown gist id or file name.
	ErrNotFound = fmt.Errorf("not found: %w", errdefs.ErrNotFound)
	// ErrTransient reports a network or server failure that is safe to retry manually.
	ErrTransient = fmt.Errorf("transient failure: %w", errdefs.ErrUnavailable)
	// ErrValidation reports bad CLI usage or input rejected before any side effect.
	ErrValidation = fmt.Errorf("invalid input: %w", errdefs.ErrInvalidArgument)
	// ErrEncryption reports a failed encrypt or decrypt.
	ErrEncryption = fmt.Errorf("encryption error: %w", errdefs.ErrDataLoss)
)

// Configf returns a configuration error.
func Configf(format string, args ...any) error {
	return wrapf(ErrConfig, format, args...)
}

// Validationf returns a validation error.
func Validationf(format string, args ...any) error {
	return wrapf(ErrValidation, format, args...)
}

// Encryptionf returns an encryption error.
func Encryptionf(format string, args ...any) error {
	return wrapf(ErrEncryption, format, args...)
}

// NotFoundf returns a not-found error.
func NotFoundf(format string, args ...any) error {
	return wrapf(ErrNotFound, format, args...)
}

func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// APIError is a failed REST call together with the HTTP status that triggered it.
// StatusCode is zero when no response was received.
type APIError struct {
	Op         string
	StatusCode int
	Kind       error
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	status := "no response"
	if e.StatusCode != 0 {
		status = fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	if e.Err == nil {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Kind, status)
	}

	return fmt.Sprintf("%s: %v (%s): %v", e.Op, e.Kind, status, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is/errors.As.
func (e *APIError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// KindForStatus maps an HTTP status code to an error kind.
// A zero status means the request never produced a response.
func KindForStatus(status int) error {
	switch {
	case status == 0:
		return ErrTransient
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrAuth
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= http.StatusInternalServerError:
		return ErrTransient
	default:
		return ErrValidation
	}
}

// StatusCode returns the HTTP status carried by err, or zero.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

// KindOf returns the sentinel kind of err, or nil when err is not classified.
func KindOf(err error) error {
	for _, kind := range []error{ErrConfig, ErrAuth, ErrNotFound, ErrTransient, ErrValidation, ErrEncryption} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}
