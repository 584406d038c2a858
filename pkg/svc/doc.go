// Package svc provides the service layer of gist.
//
// Subpackages:
//   - cipher: gpg, OpenPGP and age encryption of file contents
//   - gist: the workflows behind each command
//   - gisterr: the error taxonomy
//   - staging: local working copies for edit, clone and archive
package svc
