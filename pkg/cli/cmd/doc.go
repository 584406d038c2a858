// Package cmd provides the command-line interface for gist.
//
// Every subcommand validates its arguments before resolving dependencies,
// then delegates to the gist service:
//   - create, edit, description, fork, delete: change gists
//   - list, files, content, info: read gists
//   - clone, archive: copy gists to the local filesystem
//   - version: print the build version
package cmd
