package resolve

import "errors"

var (
	// ErrUnknownScope is returned when a task or group name referenced by
	// the tree does not exist.
	ErrUnknownScope = errors.New("unknown scope")
	// ErrInvalidReference is returned when a scope references a value or a
	// dependency across an enclosing relationship rather than a sibling one,
	// e.g. a task depending on its own parent group.
	ErrInvalidReference = errors.New("invalid scope reference")
	// ErrDependencyCycle is returned when the ordering edges of a dag body
	// form a cycle.
	ErrDependencyCycle = errors.New("dependency cycle")
)
