package errors

import "net/http"

var ErrDueDateRequired = &Exception{
	Message:    "due_date is required",
	StatusCode: http.StatusBadRequest,
}
