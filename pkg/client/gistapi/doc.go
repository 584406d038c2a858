// Package gistapi talks to the GitHub gists REST API.
//
// Client is the narrow interface the rest of the module depends on. The
// GitHubClient implementation wraps google/go-github and translates every
// failure into a *gisterr.APIError classified by HTTP status.
package gistapi
