// Package apis provides the gist domain types.
//
//   - gist: gists, files and the resolved configuration
package apis
