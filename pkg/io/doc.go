// Package io groups input and output for gist configuration.
//
// Subpackages:
//   - configmanager: config file discovery, parsing and token resolution
package io
