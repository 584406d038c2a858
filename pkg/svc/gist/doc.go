// Package gist implements the workflow behind each CLI subcommand on top of
// the REST client, the cipher and the staging manager.
package gist
