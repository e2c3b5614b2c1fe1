package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Transport error kinds. Adapters fold platform-specific failures into
	// this closed set; the match engine itself never branches on them.
	ErrNotFound     = fmt.Errorf("resource not found")
	ErrAccessDenied = fmt.Errorf("access denied")
	ErrTimeout      = fmt.Errorf("operation timed out")
	ErrUnknown      = fmt.Errorf("unknown platform error")

	// Conversion errors
	ErrUnrecognizedLink   = fmt.Errorf("unrecognized link")
	ErrNoSearch           = fmt.Errorf("platform has no public search")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
