package errors

import "net/http"

var ErrInvalidStatus = &Exception{
	Message:    "status must be one of: To Do, In Progress, Complete",
	StatusCode: http.StatusUnprocessableEntity,
}
