package session

import "fmt"

// PreconditionError reports an operation invoked in a session state that forbids
// it. The session is left unchanged.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
