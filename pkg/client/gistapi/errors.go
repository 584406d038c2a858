package gistapi

import (
	"context"
	"errors"

	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/google/go-github/v72/github"
)

// translate classifies a go-github failure. Cancellation is returned untouched
// so callers can tell an interrupted command from a remote failure.
func translate(op string, resp *github.Response, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}

	var errorResponse *github.ErrorResponse
	if status == 0 && errors.As(err, &errorResponse) && errorResponse.Response != nil {
		status = errorResponse.Response.StatusCode
	}

	return &gisterr.APIError{
		Op:         op,
		StatusCode: status,
		Kind:       gisterr.KindForStatus(status),
		Err:        err,
	}
}
