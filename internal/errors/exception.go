package errors

import (
	"errors"
	"net/http"
)

// Exception is a service error that knows which HTTP status it maps to.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// AsException unwraps err into an Exception, if it is one.
func AsException(err error) (*Exception, bool) {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusCode returns the HTTP status for err, defaulting to 500 for errors
// that are not exceptions.
func StatusCode(err error) int {
	if appErr, ok := AsException(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
