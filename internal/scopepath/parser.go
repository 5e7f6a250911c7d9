// internal/scopepath/parser.go
package scopepath

import "regexp"

// nameRegex matches a single scope name. Dots are reserved as the separator.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidName reports whether name can be used as a scope name.
func ValidName(name string) bool {
	if name == "-" || name == "_" {
		return false
	}
	return nameRegex.MatchString(name)
}
