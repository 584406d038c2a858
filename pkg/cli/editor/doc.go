// Package editor resolves and launches the user's text editor.
//
// Resolution precedence: --editor flag > `editor` config key > $EDITOR >
// $VISUAL > /usr/bin/editor > vim, nano, vi found on PATH.
package editor
