package viewerstate

import "fmt"

// ValidationError reports a direct mutator call whose argument violates
// an invariant against the live dataset. It signals a caller bug: the
// store is left unchanged. Serialized state never produces one; decode
// paths drop invalid values silently instead.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErrorf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
