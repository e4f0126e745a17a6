package symerrors

import (
	"errors"
	"fmt"
)

// ResourceError is raised when the decision diagram backend cannot continue,
// for example because its node table is exhausted. It is the only fatal error
// of the symbolic engines and surfaces as a panic until recovered at an API
// boundary with RecoverResource.
type ResourceError struct {
	// Operation is the algebra operation that failed.
	Operation string

	// Reason is the backend's description of the failure.
	Reason string
}

func (err *ResourceError) Error() string {
	if err.Reason == "" {
		return fmt.Sprintf("decision diagram operation %s failed", err.Operation)
	}
	return fmt.Sprintf("decision diagram operation %s failed: %s", err.Operation, err.Reason)
}

// NewResourceError creates and returns a new ResourceError.
func NewResourceError(operation string, reason string) *ResourceError {
	return &ResourceError{Operation: operation, Reason: reason}
}

// AsResourceError returns the error as a ResourceError, if applicable.
func AsResourceError(err error) (*ResourceError, bool) {
	var rerr *ResourceError
	if errors.As(err, &rerr) {
		return rerr, true
	}
	return nil, false
}

// RecoverResource converts a ResourceError panic into an error stored in
// errPtr. Any other panic is re-raised. It must be called directly by defer.
func RecoverResource(errPtr *error) {
	r := recover()
	if r == nil {
		return
	}

	if rerr, ok := r.(*ResourceError); ok {
		*errPtr = rerr
		return
	}
	panic(r)
}
