// Package cli provides the command-line layer of gist.
//
//   - cli/cmd: cobra commands
//   - cli/editor: editor resolution and launch
//   - cli/ui: terminal helpers, confirmation prompts and error normalization
package cli
