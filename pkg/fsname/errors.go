package fsname

import "errors"

var (
	// ErrNotSupported is raised when a policy is asked for an operation the
	// target defines no rules for, e.g. folder names on Windows.
	ErrNotSupported = errors.New("operation not supported by target")

	// ErrUnknownTarget is returned by Lookup for a name that is not registered.
	ErrUnknownTarget = errors.New("unknown target")

	// ErrInvalidProfile is returned when a YAML profile cannot be parsed or fails validation.
	ErrInvalidProfile = errors.New("invalid target profile")
)
