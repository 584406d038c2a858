// Package notify writes formatted status lines for CLI users.
//
// Message types are error (✗), warning (⚠), activity (►), success (✔) and
// info (ℹ). Colors are disabled automatically when the output is not a
// terminal or NO_COLOR is set.
package notify
