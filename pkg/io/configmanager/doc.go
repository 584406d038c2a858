// Package configmanager resolves the gist configuration.
//
// The config file is INI formatted with a single `[gist]` section. It is
// located by searching an ordered list of candidate paths; the first existing
// readable file wins and candidates are never merged:
//
//  1. the --config flag
//  2. $GIST_CONFIG
//  3. $XDG_DATA_HOME/gist
//  4. ~/.config/gist
//  5. ~/.gist
//
// A token value beginning with `!` is a command whose trimmed stdout becomes
// the token. The command is executed without a shell, with the privileges of
// the current user: whoever controls the config file controls what runs.
package configmanager
