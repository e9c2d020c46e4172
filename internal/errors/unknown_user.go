package errors

import "net/http"

var ErrUnknownUser = &Exception{
	Message:    "unknown user id",
	StatusCode: http.StatusUnprocessableEntity,
}
