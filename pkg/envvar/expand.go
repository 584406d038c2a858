// Package envvar expands ${VAR} placeholders in configuration values.
package envvar

import (
	"regexp"
)

// pattern matches ${VAR_NAME} and ${VAR_NAME:-default}.
// Groups: 1 = variable name, 2 = ":-" marker with default, 3 = default value.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(:-([^}]*))?\}`)

// Expand replaces ${VAR_NAME} and ${VAR_NAME:-default} placeholders using lookup.
// A variable that is unset and has no default expands to "" and is reported in missing.
func Expand(value string, lookup func(string) (string, bool)) (string, []string) {
	if value == "" {
		return value, nil
	}

	var missing []string

	expanded := pattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := pattern.FindStringSubmatch(match)

		envValue, ok := lookup(groups[1])
		if ok {
			return envValue
		}

		if groups[2] == "" {
			missing = append(missing, groups[1])
		}

		return groups[3]
	})

	return expanded, missing
}
