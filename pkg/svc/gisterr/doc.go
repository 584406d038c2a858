// Package gisterr provides the error taxonomy shared by every gist command.
//
// Each sentinel is chained to a github.com/containerd/errdefs category, so
// callers may test either the gist-specific kind or the generic category:
//
//	errors.Is(err, gisterr.ErrNotFound) // true
//	errdefs.IsNotFound(err)             // true
//
// All errors are terminal for the current invocation; none is retried.
package gisterr
