// Package client provides clients for remote services.
//
//   - gistapi: the GitHub gist REST API
package client
