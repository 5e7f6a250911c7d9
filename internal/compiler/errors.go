package compiler

import "errors"

var (
	// ErrUnsupported is returned for group kinds the compiler cannot lower.
	ErrUnsupported = errors.New("unsupported construct")
	// ErrArtifactOperand is returned when a condition compares an artifact.
	ErrArtifactOperand = errors.New("artifact used as condition operand")
	// ErrInvalidName is returned for pipeline names that are not valid
	// identifiers.
	ErrInvalidName = errors.New("invalid pipeline name")
	// ErrNestedExitHandler is returned for an exit handler task declared
	// below the root group.
	ErrNestedExitHandler = errors.New("exit handler task outside the root group")
	// ErrUnknownParameter is returned when a runtime override names a
	// parameter the pipeline does not declare.
	ErrUnknownParameter = errors.New("unknown pipeline parameter")
)
