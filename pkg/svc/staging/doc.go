// Package staging materializes gists on the local filesystem.
//
// A WorkingCopy moves through Empty -> Populated -> Edited -> Reconciled or
// Discarded. Populate writes one file per gist file (decrypting files that
// carry the cipher suffix when asked) and records a hidden snapshot of
// content hashes. Reconcile compares the directory against that snapshot and
// pushes only changed files, re-encrypting the ones that were decrypted, in a
// single update call.
package staging
