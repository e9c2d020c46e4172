package errors

import "net/http"

var ErrUnknownBuilding = &Exception{
	Message:    "unknown building id",
	StatusCode: http.StatusUnprocessableEntity,
}
