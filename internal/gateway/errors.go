package gateway

import "fmt"

// TransportError covers network failures and unexpected non-2xx responses.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError is a draft the service rejected: empty title, unknown
// user or building, invalid status.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid task draft: " + e.Reason
}

// NotFoundError is an operation against an unknown task id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "task not found: " + e.ID
}
