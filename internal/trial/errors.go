package trial

import "fmt"

// ValidationError reports input rejected at a mutation boundary. It is the
// only error legitimate external input can produce from this package;
// anything else that goes wrong here is a caller bug and panics.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("trial: invalid %s: %s", e.Field, e.Reason)
}
