// Package v1alpha1 contains the gist domain model shared by the client,
// the staging manager, and the command layer.
//
// Gists and their files are remote-owned: they are created by `gist create`,
// mutated by `gist edit` and `gist description`, and destroyed by
// `gist delete`. Config is the explicit configuration struct built once at
// startup from the config file.
package v1alpha1
