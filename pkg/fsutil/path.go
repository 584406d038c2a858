// Package fsutil holds filesystem path helpers.
package fsutil

import (
	"path/filepath"
	"strings"
)

// ExpandHomePath replaces a leading "~" or "~/" with home.
// Other paths, including "~user/...", are returned unchanged, as is every path when home is empty.
func ExpandHomePath(path, home string) string {
	if home == "" {
		return path
	}

	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	default:
		return path
	}
}
