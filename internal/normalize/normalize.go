// Package normalize implements the one normalization rule every symbolic
// name key in the codec descriptor shares: lowercase, then '_' -> '-'.
// It is never applied to MAVLink base-type names, which are matched
// verbatim against the primitive registry.
package normalize

import "strings"

// Key lowercases name and replaces every '_' with '-'.
func Key(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}
